package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoice_RecalculateTotals(t *testing.T) {
	inv := &Invoice{
		TaxRate: 0.20,
		LineItems: []*InvoiceLineItem{
			{Amount: 60},
			{Amount: 40},
		},
	}

	inv.RecalculateTotals()

	assert.InDelta(t, 100.0, inv.Subtotal, 1e-9)
	assert.InDelta(t, 120.0, inv.Total, 1e-9)
}

func TestInvoice_SumPaid(t *testing.T) {
	inv := &Invoice{
		Payments: []*Payment{
			{Amount: 50},
			{Amount: 30.5},
		},
	}
	assert.InDelta(t, 80.5, inv.SumPaid(), 1e-9)

	empty := &Invoice{}
	assert.Zero(t, empty.SumPaid())
}

func TestDeriveInvoiceStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)
	pastDue := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		total   float64
		sumPaid float64
		dueDate time.Time
		want    InvoiceStatus
	}{
		{"unpaid before due date", 120, 0, due, InvoiceStatusPending},
		{"partially paid before due date", 120, 60, due, InvoiceStatusPending},
		{"fully paid", 120, 120, due, InvoiceStatusPaid},
		{"overpaid", 120, 150, due, InvoiceStatusPaid},
		{"unpaid past due date", 120, 0, pastDue, InvoiceStatusOverdue},
		{"partially paid past due date", 120, 119.99, pastDue, InvoiceStatusOverdue},
		// paid wins over overdue: a late payment still settles the invoice
		{"fully paid past due date", 120, 120, pastDue, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveInvoiceStatus(tt.total, tt.sumPaid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("cash"))
	assert.True(t, ValidPaymentMethod("card"))
	assert.True(t, ValidPaymentMethod("transfer"))
	assert.False(t, ValidPaymentMethod("barter"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestInvoice_IsClosed(t *testing.T) {
	assert.True(t, (&Invoice{Status: InvoiceStatusCancelled}).IsClosed())
	assert.False(t, (&Invoice{Status: InvoiceStatusPending}).IsClosed())
	assert.False(t, (&Invoice{Status: InvoiceStatusOverdue}).IsClosed())
}
