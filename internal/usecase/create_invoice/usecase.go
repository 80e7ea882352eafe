package create_invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/service"
)

// Request bills a set of completed services to a client.
type Request struct {
	ClientID   int64
	ServiceIDs []int64
}

// LineItem is one billed service on the created invoice.
type LineItem struct {
	ServiceID   int64
	Description string
	Amount      float64
}

// Response is the created invoice.
type Response struct {
	InvoiceID int64
	ClientID  int64
	LineItems []LineItem
	Subtotal  float64
	TaxRate   float64
	Total     float64
	DueDate   time.Time
	Status    string
}

// UseCase creates an invoice from completed services. Each service is
// billed at its derived TotalCost; the invoice totals are rederived from
// the line items so the stored figures can never drift from the parts.
type UseCase struct {
	invoiceRepo  InvoiceRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	taxRate float64
	dueDays int
}

// NewUseCase creates a new create_invoice use case. taxRate and dueDays
// come from the billing policy; non-positive values fall back to the
// defaults.
func NewUseCase(
	invoiceRepo InvoiceRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
	taxRate float64,
	dueDays int,
) *UseCase {
	if taxRate <= 0 {
		taxRate = domain.DefaultTaxRate
	}
	if dueDays <= 0 {
		dueDays = domain.DefaultInvoiceDueDays
	}
	return &UseCase{
		invoiceRepo:  invoiceRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		taxRate:      taxRate,
		dueDays:      dueDays,
	}
}

// Execute creates the invoice. Every referenced service must exist and be
// completed, otherwise nothing is created.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateInvoice: client=%d, services=%v", req.ClientID, req.ServiceIDs)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: service ids must be positive", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate service id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		now := uc.timeProvider.Now()

		inv := &domain.Invoice{
			ClientID: req.ClientID,
			TaxRate:  uc.taxRate,
			DueDate:  now.AddDate(0, 0, uc.dueDays),
			Status:   domain.InvoiceStatusPending,
		}

		for _, serviceID := range req.ServiceIDs {
			svc, err := uc.serviceRepo.GetByID(txCtx, serviceID)
			if err != nil {
				if errors.Is(err, serviceRepo.ErrServiceNotFound) {
					uc.logger.Warn("CreateInvoice: service id=%d not found", serviceID)
					return fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
				}
				uc.logger.Error("CreateInvoice: failed to get service id=%d: %v", serviceID, err)
				return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
			}

			if svc.Status != domain.ServiceStatusCompleted {
				uc.logger.Warn("CreateInvoice: service id=%d is %s", svc.ID, svc.Status)
				return fmt.Errorf("%w: id=%d is %s", ErrServiceNotCompleted, svc.ID, svc.Status)
			}

			description := svc.Description
			if description == "" {
				description = fmt.Sprintf("Service #%d", svc.ID)
			}

			inv.LineItems = append(inv.LineItems, &domain.InvoiceLineItem{
				ServiceID:   svc.ID,
				Description: description,
				Amount:      svc.TotalCost,
			})
		}

		inv.RecalculateTotals()

		created, err := uc.invoiceRepo.Create(txCtx, inv)
		if err != nil {
			uc.logger.Error("CreateInvoice: failed to create invoice for client=%d: %v", req.ClientID, err)
			return fmt.Errorf("%w: failed to create invoice: %w", ErrInternal, err)
		}

		result = toResponse(created)
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateInvoice: invoice id=%d created, total=%.2f, due=%s",
		result.InvoiceID, result.Total, result.DueDate.Format(domain.DateFormat))
	return result, nil
}

func toResponse(inv *domain.Invoice) *Response {
	items := make([]LineItem, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		items = append(items, LineItem{
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	return &Response{
		InvoiceID: inv.ID,
		ClientID:  inv.ClientID,
		LineItems: items,
		Subtotal:  inv.Subtotal,
		TaxRate:   inv.TaxRate,
		Total:     inv.Total,
		DueDate:   inv.DueDate,
		Status:    string(inv.Status),
	}
}
