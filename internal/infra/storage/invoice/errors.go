package invoice

import "errors"

var (
	// ErrInvoiceNotFound is returned when the invoice does not exist
	ErrInvoiceNotFound = errors.New("invoice.repository: invoice not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("invoice.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("invoice.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("invoice.repository: failed to scan row")
)
