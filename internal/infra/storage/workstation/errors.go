package workstation

import "errors"

var (
	// ErrWorkstationNotFound is returned when the workstation does not exist
	ErrWorkstationNotFound = errors.New("workstation.repository: workstation not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("workstation.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("workstation.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("workstation.repository: failed to scan row")
)
