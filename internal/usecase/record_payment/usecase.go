package record_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/invoice"
)

// Request records a payment against an invoice.
type Request struct {
	InvoiceID int64
	Amount    float64
	Method    string
}

// Response is the invoice state after the payment was applied.
type Response struct {
	InvoiceID int64
	PaymentID int64
	Total     float64
	SumPaid   float64
	Status    string
	PaidAt    time.Time
}

// UseCase appends a payment and rederives the invoice status from the
// full payment set. The insert and the rederivation run in one
// serializable transaction with the invoice row locked, so concurrent
// payments against the same invoice serialize and the stored status
// always reflects every payment present at commit.
type UseCase struct {
	invoiceRepo  InvoiceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new record_payment use case.
func NewUseCase(
	invoiceRepo InvoiceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		invoiceRepo:  invoiceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute applies the payment. Overpayment is accepted and simply leaves
// the invoice paid; the excess stays visible in the payment history.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: invoice=%d, amount=%.2f, method=%s", req.InvoiceID, req.Amount, req.Method)

	if req.InvoiceID <= 0 {
		return nil, fmt.Errorf("%w: invoiceID must be positive", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !domain.ValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inv, err := uc.invoiceRepo.GetByID(txCtx, req.InvoiceID)
		if err != nil {
			if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
				uc.logger.Warn("RecordPayment: invoice id=%d not found", req.InvoiceID)
				return ErrInvoiceNotFound
			}
			uc.logger.Error("RecordPayment: failed to get invoice id=%d: %v", req.InvoiceID, err)
			return fmt.Errorf("%w: failed to get invoice: %w", ErrInternal, err)
		}

		if inv.IsClosed() {
			uc.logger.Warn("RecordPayment: invoice id=%d is %s", inv.ID, inv.Status)
			return ErrInvoiceClosed
		}

		payment := &domain.Payment{
			InvoiceID: inv.ID,
			Amount:    req.Amount,
			Method:    domain.PaymentMethod(req.Method),
		}
		if err := uc.invoiceRepo.AddPayment(txCtx, payment); err != nil {
			uc.logger.Error("RecordPayment: failed to add payment to invoice id=%d: %v", inv.ID, err)
			return fmt.Errorf("%w: failed to add payment: %w", ErrInternal, err)
		}

		// Rederive from the full set, never increment the stored state
		inv.Payments = append(inv.Payments, payment)
		newStatus := domain.DeriveInvoiceStatus(inv.Total, inv.SumPaid(), inv.DueDate, uc.timeProvider.Now())

		if newStatus != inv.Status {
			if err := uc.invoiceRepo.UpdateStatus(txCtx, inv.ID, newStatus); err != nil {
				uc.logger.Error("RecordPayment: failed to update status of invoice id=%d: %v", inv.ID, err)
				return fmt.Errorf("%w: failed to update invoice status: %w", ErrInternal, err)
			}
		}

		result = &Response{
			InvoiceID: inv.ID,
			PaymentID: payment.ID,
			Total:     inv.Total,
			SumPaid:   inv.SumPaid(),
			Status:    string(newStatus),
			PaidAt:    payment.PaidAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordPayment: invoice id=%d is %s (paid %.2f of %.2f)",
		result.InvoiceID, result.Status, result.SumPaid, result.Total)
	return result, nil
}
