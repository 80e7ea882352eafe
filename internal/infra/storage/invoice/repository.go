package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository provides access to the invoices, invoice_line_items and
// invoice_payments tables.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new invoice repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new invoice with its line items. Totals must already
// be recalculated by the caller (Invoice.RecalculateTotals).
func (r *Repository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoices").
		Columns("client_id", "subtotal", "tax_rate", "total", "due_date", "status").
		Values(inv.ClientID, inv.Subtotal, inv.TaxRate, inv.Total, inv.DueDate, inv.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	for _, item := range inv.LineItems {
		item.InvoiceID = inv.ID
		if err := r.addLineItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// GetByID returns the invoice with its line items and payments loaded.
// Inside a transaction the invoice row is locked FOR UPDATE so payment
// recording is single-writer per invoice.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"client_id",
		"subtotal",
		"tax_rate",
		"total",
		"due_date",
		"status",
		"created_at",
		"updated_at",
	).
		From("invoices").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var inv domain.Invoice
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.ClientID,
		&inv.Subtotal,
		&inv.TaxRate,
		&inv.Total,
		&inv.DueDate,
		&inv.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan invoice: %w", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	if inv.LineItems, err = r.getLineItems(ctx, id); err != nil {
		return nil, err
	}
	if inv.Payments, err = r.getPayments(ctx, id); err != nil {
		return nil, err
	}

	return &inv, nil
}

// AddPayment appends a payment record to an invoice.
func (r *Repository) AddPayment(ctx context.Context, payment *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoice_payments").
		Columns("invoice_id", "amount", "method").
		Values(payment.InvoiceID, payment.Amount, payment.Method).
		Suffix("RETURNING id, paid_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddPayment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &payment.PaidAt); err != nil {
		return fmt.Errorf("%w: AddPayment - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus persists a recomputed invoice status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.InvoiceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invoices").
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
		return ErrInvoiceNotFound
	}

	return nil
}

func (r *Repository) addLineItem(ctx context.Context, item *domain.InvoiceLineItem) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invoice_line_items").
		Columns("invoice_id", "service_id", "description", "amount").
		Values(item.InvoiceID, item.ServiceID, item.Description, item.Amount).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: addLineItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("%w: addLineItem - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getLineItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceLineItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "invoice_id", "service_id", "description", "amount").
		From("invoice_line_items").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getLineItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getLineItems - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.InvoiceLineItem, 0)
	for rows.Next() {
		var item domain.InvoiceLineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ServiceID, &item.Description, &item.Amount); err != nil {
			return nil, fmt.Errorf("%w: getLineItems - scan row: %w", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getLineItems - rows error: %w", ErrScanRow, err)
	}

	return items, nil
}

func (r *Repository) getPayments(ctx context.Context, invoiceID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "invoice_id", "amount", "method", "paid_at").
		From("invoice_payments").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("paid_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPayments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPayments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(&payment.ID, &payment.InvoiceID, &payment.Amount, &payment.Method, &payment.PaidAt); err != nil {
			return nil, fmt.Errorf("%w: getPayments - scan row: %w", ErrScanRow, err)
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPayments - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}
