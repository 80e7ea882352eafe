package mechanic

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository provides access to the mechanics table. Working hours are
// stored as a JSONB document per mechanic.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new mechanic repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new mechanic.
func (r *Repository) Create(ctx context.Context, mechanic *domain.Mechanic) (*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hours, err := json.Marshal(mechanic.WorkingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal working hours: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("mechanics").
		Columns("name", "status", "max_concurrent_services", "working_hours").
		Values(mechanic.Name, mechanic.Status, mechanic.MaxConcurrentServices, hours).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&mechanic.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	mechanic.CreatedAt = createdAt.Time
	mechanic.UpdatedAt = updatedAt.Time

	return mechanic, nil
}

// GetByID returns the mechanic with the given id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mechanic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"status",
		"max_concurrent_services",
		"working_hours",
		"created_at",
		"updated_at",
	).
		From("mechanics").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var mechanic domain.Mechanic
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&mechanic.ID,
		&mechanic.Name,
		&mechanic.Status,
		&mechanic.MaxConcurrentServices,
		&hours,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMechanicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan mechanic: %w", ErrScanRow, err)
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &mechanic.WorkingHours); err != nil {
			return nil, fmt.Errorf("%w: GetByID - unmarshal working hours: %w", ErrScanRow, err)
		}
	}

	mechanic.CreatedAt = createdAt.Time
	mechanic.UpdatedAt = updatedAt.Time

	return &mechanic, nil
}

// UpdateStatus updates a mechanic's status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.MechanicStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("mechanics").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrMechanicNotFound
	}

	return nil
}
