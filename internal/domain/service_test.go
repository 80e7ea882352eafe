package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_CanTransition(t *testing.T) {
	tests := []struct {
		from ServiceStatus
		to   ServiceStatus
		want bool
	}{
		{ServiceStatusPending, ServiceStatusInProgress, true},
		{ServiceStatusPending, ServiceStatusCancelled, true},
		{ServiceStatusPending, ServiceStatusCompleted, false},
		{ServiceStatusInProgress, ServiceStatusCompleted, true},
		{ServiceStatusInProgress, ServiceStatusCancelled, true},
		{ServiceStatusInProgress, ServiceStatusPending, false},
		{ServiceStatusCompleted, ServiceStatusInProgress, false},
		{ServiceStatusCompleted, ServiceStatusCancelled, false},
		{ServiceStatusCancelled, ServiceStatusInProgress, false},
		{ServiceStatusCancelled, ServiceStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			svc := &Service{Status: tt.from}
			assert.Equal(t, tt.want, svc.CanTransition(tt.to))
		})
	}
}

func TestService_RecomputeCosts(t *testing.T) {
	svc := &Service{
		LaborHours: 2,
		HourlyRate: 50,
		Parts: []*ServicePart{
			{Quantity: 2, UnitPrice: 10},
			{Quantity: 1, UnitPrice: 30},
		},
	}

	svc.RecomputeCosts()

	assert.InDelta(t, 50.0, svc.PartsCost, 1e-9)
	assert.InDelta(t, 150.0, svc.TotalCost, 1e-9)

	// removing all parts brings parts cost back to zero
	svc.Parts = nil
	svc.RecomputeCosts()
	assert.Zero(t, svc.PartsCost)
	assert.InDelta(t, 100.0, svc.TotalCost, 1e-9)
}

func TestService_IsOpen(t *testing.T) {
	assert.True(t, (&Service{Status: ServiceStatusPending}).IsOpen())
	assert.True(t, (&Service{Status: ServiceStatusInProgress}).IsOpen())
	assert.False(t, (&Service{Status: ServiceStatusCompleted}).IsOpen())
	assert.False(t, (&Service{Status: ServiceStatusCancelled}).IsOpen())
}

func TestValidServiceStatus(t *testing.T) {
	assert.True(t, ValidServiceStatus("pending"))
	assert.True(t, ValidServiceStatus("in_progress"))
	assert.True(t, ValidServiceStatus("completed"))
	assert.True(t, ValidServiceStatus("cancelled"))
	assert.False(t, ValidServiceStatus("done"))
	assert.False(t, ValidServiceStatus(""))
}
