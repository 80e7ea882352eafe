package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository provides access to the services and service_parts tables.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new service repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new service with its parts.
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"vehicle_id",
			"mechanic_id",
			"booking_id",
			"starts_at",
			"ends_at",
			"status",
			"description",
			"labor_hours",
			"hourly_rate",
			"parts_cost",
			"total_cost",
		).
		Values(
			svc.VehicleID,
			svc.MechanicID,
			svc.BookingID,
			svc.Interval.Start,
			svc.Interval.End,
			svc.Status,
			svc.Description,
			svc.LaborHours,
			svc.HourlyRate,
			svc.PartsCost,
			svc.TotalCost,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	for _, part := range svc.Parts {
		part.ServiceID = svc.ID
		if err := r.AddPart(ctx, part); err != nil {
			return nil, err
		}
	}

	return svc, nil
}

// GetByID returns the service with its parts loaded.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"vehicle_id",
		"mechanic_id",
		"booking_id",
		"starts_at",
		"ends_at",
		"actual_end_time",
		"status",
		"description",
		"labor_hours",
		"hourly_rate",
		"parts_cost",
		"total_cost",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id})

	// Lock the row for lifecycle transitions inside a transaction
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.VehicleID,
		&svc.MechanicID,
		&svc.BookingID,
		&svc.Interval.Start,
		&svc.Interval.End,
		&svc.ActualEndTime,
		&svc.Status,
		&svc.Description,
		&svc.LaborHours,
		&svc.HourlyRate,
		&svc.PartsCost,
		&svc.TotalCost,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	parts, err := r.getParts(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Parts = parts

	return &svc, nil
}

// UpdateStatus persists a lifecycle transition together with the fields
// the transition derives (actual end time, recomputed costs).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ServiceStatus, actualEndTime *time.Time, partsCost, totalCost float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("services").
		Set("status", status).
		Set("parts_cost", partsCost).
		Set("total_cost", totalCost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if actualEndTime != nil {
		updateBuilder = updateBuilder.Set("actual_end_time", *actualEndTime)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrServiceNotFound
	}

	return nil
}

// UpdateInterval moves the service's estimated interval, keeping it in
// step with the booking that owns the calendar slot.
func (r *Repository) UpdateInterval(ctx context.Context, id int64, interval domain.TimeInterval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("starts_at", interval.Start).
		Set("ends_at", interval.End).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// CountOpenByVehicle counts the vehicle's services still in an open
// (pending/in_progress) state. The reconciler derives the vehicle status
// from this count.
func (r *Repository) CountOpenByVehicle(ctx context.Context, vehicleID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	openStatusStrings := make([]string, len(domain.OpenServiceStatuses))
	for i, s := range domain.OpenServiceStatuses {
		openStatusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("services").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"status": openStatusStrings}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOpenByVehicle - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// AddPart attaches a part to a service.
func (r *Repository) AddPart(ctx context.Context, part *domain.ServicePart) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_parts").
		Columns("service_id", "name", "quantity", "unit_price", "available").
		Values(part.ServiceID, part.Name, part.Quantity, part.UnitPrice, part.Available).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddPart - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&part.ID); err != nil {
		return fmt.Errorf("%w: AddPart - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getParts(ctx context.Context, serviceID int64) ([]*domain.ServicePart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"quantity",
		"unit_price",
		"available",
	).
		From("service_parts").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getParts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getParts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	parts := make([]*domain.ServicePart, 0)
	for rows.Next() {
		var part domain.ServicePart
		if err := rows.Scan(&part.ID, &part.ServiceID, &part.Name, &part.Quantity, &part.UnitPrice, &part.Available); err != nil {
			return nil, fmt.Errorf("%w: getParts - scan row: %w", ErrScanRow, err)
		}
		parts = append(parts, &part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getParts - rows error: %w", ErrScanRow, err)
	}

	return parts, nil
}
