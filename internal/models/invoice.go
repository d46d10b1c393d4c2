package models

import "time"

// Invoice is a row of invoices.
type Invoice struct {
	ID                string     `db:"id"`
	Number            int64      `db:"number"`
	Version           int64      `db:"version"`
	PersonID          string     `db:"person_id"`
	ClientID          string     `db:"client_id"`
	PeriodStart       string     `db:"period_start"`
	PeriodEnd         string     `db:"period_end"`
	Status            string     `db:"status"`
	SubtotalCents     int64      `db:"subtotal_cents"`
	GstTotalCents     int64      `db:"gst_total_cents"`
	TotalCents        int64      `db:"total_cents"`
	PreviousInvoiceID *string    `db:"previous_invoice_id"`
	IssuedAt          *time.Time `db:"issued_at"`
	PaidAt            *time.Time `db:"paid_at"`
	AuditFields
}

// InvoiceItem is a row of invoice_items.
type InvoiceItem struct {
	ID          string  `db:"id"`
	InvoiceID   string  `db:"invoice_id"`
	Description string  `db:"description"`
	Location    *string `db:"location"`
	AmountCents int64   `db:"amount_cents"`
	SortOrder   int     `db:"sort_order"`
}
