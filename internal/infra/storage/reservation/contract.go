package reservation

import (
	"github.com/m04kA/CWS-ReservationService/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works against
// *sql.DB, the instrumented wrapper and an open transaction alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
