package create_invoice

import "errors"

var (
	// ErrServiceNotFound is returned when a billed service does not exist
	ErrServiceNotFound = errors.New("create_invoice: service not found")

	// ErrServiceNotCompleted is returned when billing a service that has
	// not reached completed; open and cancelled work is not billable
	ErrServiceNotCompleted = errors.New("create_invoice: service is not completed")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_invoice: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("create_invoice: internal error")
)
