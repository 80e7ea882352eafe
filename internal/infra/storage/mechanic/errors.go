package mechanic

import "errors"

var (
	// ErrMechanicNotFound is returned when the mechanic does not exist
	ErrMechanicNotFound = errors.New("mechanic.repository: mechanic not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("mechanic.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("mechanic.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("mechanic.repository: failed to scan row")
)
