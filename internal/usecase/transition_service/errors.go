package transition_service

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("transition_service: service not found")

	// ErrNotScheduled is returned when a service is started before its
	// booking has been confirmed; indicates a caller ordering bug
	ErrNotScheduled = errors.New("transition_service: booking is not confirmed yet")

	// ErrInvalidTransition is returned for lifecycle edges that do not
	// exist (e.g. completed -> in_progress)
	ErrInvalidTransition = errors.New("transition_service: illegal lifecycle transition")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("transition_service: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("transition_service: internal error")
)
