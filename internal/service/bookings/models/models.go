package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// BookingResponse is the service-level view of a booking.
type BookingResponse struct {
	ID                 int64
	MechanicID         int64
	ServiceID          *int64
	StartsAt           time.Time
	EndsAt             time.Time
	Status             string
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// GetMechanicBookingsRequest filters the calendar read of one mechanic.
type GetMechanicBookingsRequest struct {
	MechanicID      int64
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// CancelBookingRequest carries a cancellation with its reason.
type CancelBookingRequest struct {
	Reason string
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Bookings []*BookingResponse
}

// FromDomainBooking converts a domain booking to the response model.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		MechanicID:         b.MechanicID,
		ServiceID:          b.ServiceID,
		StartsAt:           b.Interval.Start,
		EndsAt:             b.Interval.End,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList converts a list of domain bookings.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus validates and converts a status string.
func ToDomainBookingStatus(s string) (domain.BookingStatus, bool) {
	switch domain.BookingStatus(s) {
	case domain.BookingStatusPending, domain.BookingStatusInProgress,
		domain.BookingStatusCompleted, domain.BookingStatusCancelled:
		return domain.BookingStatus(s), true
	default:
		return "", false
	}
}
