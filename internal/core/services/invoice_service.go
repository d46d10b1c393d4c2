package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/opahours_backend/internal/apperrors"
	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/google/uuid"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	workLogRepo portsrepo.WorkLogRepositoryFacade
	personRepo  portsrepo.PersonRepositoryFacade
}

// NewInvoiceService creates a new invoice service with the provided dependencies
func NewInvoiceService(
	txManager portsrepo.TransactionManager,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	workLogRepo portsrepo.WorkLogRepositoryFacade,
	personRepo portsrepo.PersonRepositoryFacade,
	opts ...ServiceOption,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: newBaseService(opts),
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		workLogRepo: workLogRepo,
		personRepo:  personRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) findInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.wrapFind(ctx, invoiceID)(s.invoiceRepo.FindInvoiceByID(ctx, invoiceID))
}

// lockInvoice loads the invoice and holds its row until the transaction ends.
func (s *invoiceService) lockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.wrapFind(ctx, invoiceID)(s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, invoiceID))
}

func (s *invoiceService) wrapFind(ctx context.Context, invoiceID string) func(*domain.Invoice, error) (*domain.Invoice, error) {
	return func(inv *domain.Invoice, err error) (*domain.Invoice, error) {
		if err == nil {
			return inv, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.CodeInvoiceNotFound, err).WithDetails(map[string]any{"invoiceId": invoiceID})
		}
		s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
}

// loadWorkLogs returns the logs in request order, repeating a log when its id
// is repeated so the draft builder can reject the duplicate.
func (s *invoiceService) loadWorkLogs(ctx context.Context, ids []string) ([]*domain.WorkLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.workLogRepo.FindWorkLogsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.WorkLog, len(found))
	for _, wl := range found {
		byID[wl.ID()] = wl
	}
	logs := make([]*domain.WorkLog, 0, len(ids))
	for _, id := range ids {
		wl, ok := byID[id]
		if !ok {
			return nil, apperrors.New(apperrors.CodeWorkLogNotFound).WithDetails(map[string]any{"workLogId": id})
		}
		logs = append(logs, wl)
	}
	return logs, nil
}

// CreateInvoiceDraft bills the selected draft logs and links them to the new invoice.
func (s *invoiceService) CreateInvoiceDraft(ctx context.Context, req dto.CreateInvoiceDraftRequest) (*domain.Invoice, error) {
	var invoice *domain.Invoice
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		logs, err := s.loadWorkLogs(ctx, req.WorkLogIDs)
		if err != nil {
			return err
		}

		input := domain.BuildInvoiceDraftInput{
			InvoiceID: uuid.NewString(),
			WorkLogs:  logs,
		}
		if len(logs) > 0 {
			input.PersonID = logs[0].PersonID()
			input.ClientID = logs[0].ClientID()

			person, err := s.personRepo.FindPersonByID(ctx, input.PersonID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.Wrap(apperrors.CodePersonNotFound, err)
				}
				return err
			}
			input.GstPercentage = person.EffectiveGstPercentage()
		}
		if req.GstPercentage != nil {
			input.GstPercentage = *req.GstPercentage
		}

		// reject a bad selection before a sequence value is spent on it
		if _, err := domain.CheckDraftSelection(input.PersonID, input.ClientID, logs); err != nil {
			return err
		}
		for _, wl := range logs {
			if err := wl.CanLink(); err != nil {
				return err
			}
		}

		// sequence values are not returned on rollback, so numbers may have gaps
		if input.InvoiceNumber, err = s.invoiceRepo.NextInvoiceNumber(ctx); err != nil {
			return err
		}
		if invoice, err = domain.BuildInvoiceDraft(input); err != nil {
			return err
		}

		if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
			return err
		}
		for _, wl := range logs {
			if err := wl.MarkLinked(); err != nil {
				return err
			}
			if err := s.workLogRepo.SaveWorkLog(ctx, wl); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if _, isDomain := domain.CodeOf(err); !isDomain && !errors.As(err, &appErr) {
			s.LogError(ctx, err, "Failed to create invoice draft")
		}
		return nil, err
	}

	s.metrics.invoiceDrafted(invoice.TotalCents())
	s.LogInfo(ctx, "Invoice draft created",
		slog.String("invoice_id", invoice.ID()),
		slog.Int64("number", invoice.Number()),
		slog.Int("work_logs", len(invoice.WorkLogIDs())),
		slog.Int64("total_cents", invoice.TotalCents()))
	return invoice, nil
}

// IssueInvoice finalises a draft and locks every linked work log.
func (s *invoiceService) IssueInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var issued *domain.Invoice
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.lockInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if issued, err = current.Issue(s.Now()); err != nil {
			return err
		}
		logs, err := s.workLogRepo.FindWorkLogsByIDs(ctx, current.WorkLogIDs())
		if err != nil {
			return err
		}
		for _, wl := range logs {
			if err := wl.MarkInvoiced(); err != nil {
				return err
			}
			if err := s.workLogRepo.SaveWorkLog(ctx, wl); err != nil {
				return err
			}
		}
		return s.invoiceRepo.SaveInvoice(ctx, issued)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.invoiceTransitioned(string(domain.InvoiceStatusIssued))
	s.LogInfo(ctx, "Invoice issued", slog.String("invoice_id", invoiceID))
	return issued, nil
}

// MarkInvoiceSent moves an issued invoice to sent.
func (s *invoiceService) MarkInvoiceSent(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	sent, err := s.transition(ctx, invoiceID, (*domain.Invoice).MarkSent)
	if err != nil {
		return nil, err
	}
	s.metrics.invoiceTransitioned(string(domain.InvoiceStatusSent))
	return sent, nil
}

// MarkInvoicePaid records payment, at the given time or now.
func (s *invoiceService) MarkInvoicePaid(ctx context.Context, invoiceID string, req dto.MarkInvoicePaidRequest) (*domain.Invoice, error) {
	at := s.Now()
	if req.PaidAt != nil {
		at = req.PaidAt.UTC()
	}
	paid, err := s.transition(ctx, invoiceID, func(inv *domain.Invoice) (*domain.Invoice, error) {
		return inv.MarkPaid(at)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.invoiceTransitioned(string(domain.InvoiceStatusPaid))
	s.LogInfo(ctx, "Invoice paid", slog.String("invoice_id", invoiceID), slog.Time("paid_at", at))
	return paid, nil
}

// transition applies move to the locked invoice and saves the result, so two
// concurrent moves see each other's outcome instead of overwriting it.
func (s *invoiceService) transition(ctx context.Context, invoiceID string, move func(*domain.Invoice) (*domain.Invoice, error)) (*domain.Invoice, error) {
	var next *domain.Invoice
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.lockInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if next, err = move(current); err != nil {
			return err
		}
		if err := s.invoiceRepo.SaveInvoice(ctx, next); err != nil {
			s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoiceID))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// GetInvoiceByID retrieves an invoice by its ID
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.findInvoice(ctx, invoiceID)
}

// ListInvoices lists invoices newest first.
func (s *invoiceService) ListInvoices(ctx context.Context, query dto.ListInvoicesQuery) ([]*domain.Invoice, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, portsrepo.InvoiceFilter{
		PersonID: query.PersonID,
		ClientID: query.ClientID,
		Status:   domain.InvoiceStatus(query.Status),
		Limit:    limit,
		Offset:   query.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	return invoices, nil
}
