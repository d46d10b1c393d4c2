package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/SscSPs/opahours_backend/internal/models"
	"github.com/SscSPs/opahours_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	invoiceColumns = `id, number, version, person_id, client_id, period_start::text, period_end::text, status::text,
        subtotal_cents, gst_total_cents, total_cents, previous_invoice_id, issued_at, paid_at, created_at, updated_at`
	invoiceInsertColumns = `id, number, version, person_id, client_id, period_start, period_end, status,
        subtotal_cents, gst_total_cents, total_cents, previous_invoice_id, issued_at, paid_at, created_at, updated_at`
	invoiceItemColumns = `id, invoice_id, description, location, amount_cents, sort_order`
)

type PgxInvoiceRepository struct {
	BaseRepository
	now func() time.Time
}

func newPgxInvoiceRepository(base BaseRepository) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: base, now: time.Now}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoiceRow(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(&m.ID, &m.Number, &m.Version, &m.PersonID, &m.ClientID, &m.PeriodStart, &m.PeriodEnd,
		&m.Status, &m.SubtotalCents, &m.GstTotalCents, &m.TotalCents, &m.PreviousInvoiceID,
		&m.IssuedAt, &m.PaidAt, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func scanInvoiceItemRow(row pgx.Row) (models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(&m.ID, &m.InvoiceID, &m.Description, &m.Location, &m.AmountCents, &m.SortOrder)
	return m, err
}

type invoiceLink struct {
	invoiceID string
	workLogID string
}

// hydrate attaches items and work log links to each header.
func (r *PgxInvoiceRepository) hydrate(ctx context.Context, headers []models.Invoice) ([]*domain.Invoice, error) {
	if len(headers) == 0 {
		return []*domain.Invoice{}, nil
	}
	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
	}
	q := r.q(ctx)

	rows, err := q.Query(ctx, `
        SELECT `+invoiceItemColumns+`
        FROM invoice_items
        WHERE invoice_id = ANY($1)
        ORDER BY invoice_id, sort_order, id;
    `, ids)
	if err != nil {
		return nil, mapError(err, "failed to query invoice items")
	}
	items, err := collect(rows, scanInvoiceItemRow)
	if err != nil {
		return nil, err
	}

	rows, err = q.Query(ctx, `
        SELECT invoice_id, work_log_id
        FROM invoice_work_logs
        WHERE invoice_id = ANY($1)
        ORDER BY invoice_id, position;
    `, ids)
	if err != nil {
		return nil, mapError(err, "failed to query invoice work logs")
	}
	links, err := collect(rows, func(row pgx.Row) (invoiceLink, error) {
		var l invoiceLink
		err := row.Scan(&l.invoiceID, &l.workLogID)
		return l, err
	})
	if err != nil {
		return nil, err
	}

	itemsByInvoice := make(map[string][]models.InvoiceItem, len(headers))
	for _, item := range items {
		itemsByInvoice[item.InvoiceID] = append(itemsByInvoice[item.InvoiceID], item)
	}
	logsByInvoice := make(map[string][]string, len(headers))
	for _, l := range links {
		logsByInvoice[l.invoiceID] = append(logsByInvoice[l.invoiceID], l.workLogID)
	}

	out := make([]*domain.Invoice, len(headers))
	for i, h := range headers {
		inv, err := mapping.ToDomainInvoice(h, itemsByInvoice[h.ID], logsByInvoice[h.ID])
		if err != nil {
			return nil, err
		}
		out[i] = inv
	}
	return out, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1;`, invoiceID)
}

func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE;`, invoiceID)
}

func (r *PgxInvoiceRepository) findOne(ctx context.Context, query string, invoiceID string) (*domain.Invoice, error) {
	header, err := scanInvoiceRow(r.q(ctx).QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, mapError(err, "failed to find invoice")
	}
	invoices, err := r.hydrate(ctx, []models.Invoice{header})
	if err != nil {
		return nil, err
	}
	return invoices[0], nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]*domain.Invoice, error) {
	conds := []string{"TRUE"}
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.PersonID != "" {
		add("person_id = $%d", filter.PersonID)
	}
	if filter.ClientID != "" {
		add("client_id = $%d", filter.ClientID)
	}
	if filter.Status != "" {
		add("status = $%d::invoice_status", string(filter.Status))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, max(filter.Offset, 0))

	query := fmt.Sprintf(`
        SELECT %s
        FROM invoices
        WHERE %s
        ORDER BY number DESC, version DESC
        LIMIT $%d OFFSET $%d;
    `, invoiceColumns, strings.Join(conds, " AND "), len(args)-1, len(args))

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list invoices")
	}
	headers, err := collect(rows, scanInvoiceRow)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, headers)
}

func (r *PgxInvoiceRepository) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT nextval('invoice_number_seq');`).Scan(&n); err != nil {
		return 0, mapError(err, "failed to draw invoice number")
	}
	return n, nil
}

// SaveInvoice inserts the invoice with its lines and links on first save.
// Later saves only move the header through its lifecycle.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	header, items := mapping.ToModelInvoice(invoice, r.now().UTC())

	return r.RunInTx(ctx, func(ctx context.Context) error {
		q := r.q(ctx)
		var inserted bool
		err := q.QueryRow(ctx, `
            INSERT INTO invoices (`+invoiceInsertColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8::invoice_status, $9, $10, $11, $12, $13, $14, $15, $16)
            ON CONFLICT (id) DO UPDATE SET
                status = EXCLUDED.status,
                issued_at = EXCLUDED.issued_at,
                paid_at = EXCLUDED.paid_at,
                updated_at = EXCLUDED.updated_at
            RETURNING (xmax = 0);
        `,
			header.ID, header.Number, header.Version, header.PersonID, header.ClientID, header.PeriodStart,
			header.PeriodEnd, header.Status, header.SubtotalCents, header.GstTotalCents, header.TotalCents,
			header.PreviousInvoiceID, header.IssuedAt, header.PaidAt, header.CreatedAt, header.UpdatedAt,
		).Scan(&inserted)
		if err != nil {
			return mapError(err, "failed to save invoice")
		}
		if !inserted {
			return nil
		}

		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(`
                INSERT INTO invoice_items (`+invoiceItemColumns+`)
                VALUES ($1, $2, $3, $4, $5, $6);
            `, item.ID, item.InvoiceID, item.Description, item.Location, item.AmountCents, item.SortOrder)
		}
		for i, workLogID := range invoice.WorkLogIDs() {
			batch.Queue(`
                INSERT INTO invoice_work_logs (invoice_id, work_log_id, position)
                VALUES ($1, $2, $3);
            `, header.ID, workLogID, i)
		}
		return execBatch(ctx, q, batch, "failed to insert invoice lines")
	})
}
