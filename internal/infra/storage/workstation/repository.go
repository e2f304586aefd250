package workstation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	"github.com/m04kA/CWS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CWS-ReservationService/pkg/psqlbuilder"
)

// Repository is the PostgreSQL store for workstations
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a workstation repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a workstation by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WorkStation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"location",
		"status",
		"created_at",
		"updated_at",
	).
		From("workstations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var ws domain.WorkStation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ws.ID,
		&ws.Name,
		&ws.Location,
		&ws.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrWorkstationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan workstation: %v", ErrScanRow, err)
	}

	ws.CreatedAt = createdAt.Time
	ws.UpdatedAt = updatedAt.Time

	return &ws, nil
}
