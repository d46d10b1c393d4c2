package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	"github.com/SscSPs/opahours_backend/internal/models"
)

// ToModelInvoice converts an invoice into its header and line rows.
func ToModelInvoice(inv *domain.Invoice, now time.Time) (models.Invoice, []models.InvoiceItem) {
	header := models.Invoice{
		ID:                inv.ID(),
		Number:            inv.Number(),
		Version:           inv.Version(),
		PersonID:          inv.PersonID(),
		ClientID:          inv.ClientID(),
		PeriodStart:       inv.PeriodStart(),
		PeriodEnd:         inv.PeriodEnd(),
		Status:            string(inv.Status()),
		SubtotalCents:     inv.SubtotalCents(),
		GstTotalCents:     inv.GstTotalCents(),
		TotalCents:        inv.TotalCents(),
		PreviousInvoiceID: inv.PreviousInvoiceID(),
		IssuedAt:          inv.IssuedAt(),
		PaidAt:            inv.PaidAt(),
		AuditFields:       models.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	items := inv.Items()
	rows := make([]models.InvoiceItem, len(items))
	for i, item := range items {
		rows[i] = models.InvoiceItem{
			ID:          item.ID(),
			InvoiceID:   inv.ID(),
			Description: item.Description(),
			Location:    item.Location(),
			AmountCents: item.AmountCents(),
			SortOrder:   item.SortOrder(),
		}
	}
	return header, rows
}

// ToDomainInvoice rebuilds an invoice from its stored rows.
func ToDomainInvoice(m models.Invoice, rows []models.InvoiceItem, workLogIDs []string) (*domain.Invoice, error) {
	items := make([]domain.InvoiceItem, 0, len(rows))
	for _, row := range rows {
		item, err := domain.NewInvoiceItem(domain.InvoiceItemInput{
			ID:          row.ID,
			Description: row.Description,
			Location:    row.Location,
			AmountCents: row.AmountCents,
			SortOrder:   row.SortOrder,
		})
		if err != nil {
			return nil, fmt.Errorf("stored invoice item %s is invalid: %w", row.ID, err)
		}
		items = append(items, item)
	}

	inv, err := domain.NewInvoice(domain.InvoiceInput{
		ID:                m.ID,
		Number:            m.Number,
		Version:           m.Version,
		PersonID:          m.PersonID,
		ClientID:          m.ClientID,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		Status:            domain.InvoiceStatus(m.Status),
		SubtotalCents:     m.SubtotalCents,
		GstTotalCents:     m.GstTotalCents,
		TotalCents:        m.TotalCents,
		PreviousInvoiceID: m.PreviousInvoiceID,
		IssuedAt:          m.IssuedAt,
		PaidAt:            m.PaidAt,
		Items:             items,
		WorkLogIDs:        workLogIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("stored invoice %s is invalid: %w", m.ID, err)
	}
	return inv, nil
}
