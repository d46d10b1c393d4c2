package services

import (
	"context"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, query dto.ListInvoicesQuery) ([]*domain.Invoice, error)
}

// InvoiceWriterSvc defines the invoice lifecycle
type InvoiceWriterSvc interface {
	// CreateInvoiceDraft bills the selected draft work logs and links them to the new invoice.
	CreateInvoiceDraft(ctx context.Context, req dto.CreateInvoiceDraftRequest) (*domain.Invoice, error)

	// IssueInvoice finalises a draft and locks its work logs.
	IssueInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	MarkInvoiceSent(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, invoiceID string, req dto.MarkInvoicePaidRequest) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
