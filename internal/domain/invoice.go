package domain

import "time"

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// ValidPaymentMethod reports whether the string names a known method.
func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	default:
		return false
	}
}

// Payment is a single payment recorded against an invoice.
type Payment struct {
	ID        int64
	InvoiceID int64
	Amount    float64
	Method    PaymentMethod
	PaidAt    time.Time
}

// InvoiceLineItem is a billed service on an invoice.
type InvoiceLineItem struct {
	ID          int64
	InvoiceID   int64
	ServiceID   int64
	Description string
	Amount      float64
}

// Invoice groups billed services for a client. Its status is owned by the
// aggregate of its payments: recomputed after every payment insertion and
// never set directly, except to cancelled.
type Invoice struct {
	ID        int64
	ClientID  int64
	LineItems []*InvoiceLineItem
	Subtotal  float64
	TaxRate   float64
	Total     float64 // Subtotal * (1 + TaxRate)
	DueDate   time.Time
	Status    InvoiceStatus
	Payments  []*Payment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalculateTotals rederives Subtotal and Total from the line items.
func (i *Invoice) RecalculateTotals() {
	i.Subtotal = 0
	for _, item := range i.LineItems {
		i.Subtotal += item.Amount
	}
	i.Total = i.Subtotal * (1 + i.TaxRate)
}

// SumPaid returns the cumulative amount of the loaded payments.
func (i *Invoice) SumPaid() float64 {
	var sum float64
	for _, p := range i.Payments {
		sum += p.Amount
	}
	return sum
}

// IsClosed returns true if the invoice no longer accepts payments.
func (i *Invoice) IsClosed() bool {
	return i.Status == InvoiceStatusCancelled
}

// DeriveInvoiceStatus applies the status-derivation rule with priority
// paid > overdue > pending: a fully paid invoice is paid even past its
// due date.
func DeriveInvoiceStatus(total, sumPaid float64, dueDate, now time.Time) InvoiceStatus {
	if sumPaid >= total {
		return InvoiceStatusPaid
	}
	if now.After(dueDate) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusPending
}
