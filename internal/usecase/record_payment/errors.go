package record_payment

import "errors"

var (
	// ErrInvoiceNotFound is returned when the invoice does not exist
	ErrInvoiceNotFound = errors.New("record_payment: invoice not found")

	// ErrInvoiceClosed is returned when paying a cancelled invoice
	ErrInvoiceClosed = errors.New("record_payment: invoice is closed")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("record_payment: internal error")
)
