package repositories

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
)

// InvoiceFilter narrows ListInvoices. Empty fields are ignored.
type InvoiceFilter struct {
	PersonID string
	ClientID string
	Status   domain.InvoiceStatus
	Limit    int
	Offset   int
}

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	// FindInvoiceByID returns apperrors.ErrNotFound when absent.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate also locks the invoice row for the surrounding transaction.
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns invoices newest number first.
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	// NextInvoiceNumber draws the next value of the invoice number sequence.
	NextInvoiceNumber(ctx context.Context) (int64, error)

	// SaveInvoice inserts a new invoice with its items and work log links, or
	// updates the header of an existing one. Items and links are immutable.
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
