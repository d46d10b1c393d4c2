package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "draft"
	InvoiceStatusIssued     InvoiceStatus = "issued"
	InvoiceStatusSent       InvoiceStatus = "sent"
	InvoiceStatusPaid       InvoiceStatus = "paid"
	InvoiceStatusSuperseded InvoiceStatus = "superseded"
)

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusSuperseded:
		return true
	}
	return false
}

// isUUID accepts only the canonical 36 character form.
func isUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// InvoiceItemInput carries the raw values for one invoice line.
type InvoiceItemInput struct {
	ID          string
	Description string
	Location    *string
	AmountCents int64
	SortOrder   int
}

// InvoiceItem is one immutable invoice line.
type InvoiceItem struct {
	id          string
	description string
	location    *string
	amountCents int64
	sortOrder   int
}

// NewInvoiceItem validates input and builds the line.
func NewInvoiceItem(input InvoiceItemInput) (InvoiceItem, error) {
	if !isUUID(input.ID) {
		return InvoiceItem{}, newDomainError(CodeInvoiceInvalidItemID, map[string]any{"id": input.ID})
	}
	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) < 2 {
		return InvoiceItem{}, newDomainError(CodeInvoiceInvalidItemDescription, nil)
	}
	if input.AmountCents < 0 {
		return InvoiceItem{}, newDomainError(CodeInvoiceInvalidItemAmount, map[string]any{"amountCents": input.AmountCents})
	}
	if input.SortOrder < 0 {
		return InvoiceItem{}, newDomainError(CodeInvoiceInvalidItemSortOrder, map[string]any{"sortOrder": input.SortOrder})
	}

	var location *string
	if input.Location != nil {
		if l := strings.TrimSpace(*input.Location); l != "" {
			location = &l
		}
	}

	return InvoiceItem{
		id:          input.ID,
		description: description,
		location:    location,
		amountCents: input.AmountCents,
		sortOrder:   input.SortOrder,
	}, nil
}

func (i InvoiceItem) ID() string          { return i.id }
func (i InvoiceItem) Description() string { return i.description }
func (i InvoiceItem) AmountCents() int64  { return i.amountCents }
func (i InvoiceItem) SortOrder() int      { return i.sortOrder }

// Location is nil for lines that are not tied to a place, such as daily adjustments.
func (i InvoiceItem) Location() *string {
	if i.location == nil {
		return nil
	}
	l := *i.location
	return &l
}

// InvoiceInput carries the raw values for an invoice.
type InvoiceInput struct {
	ID                string
	Number            int64
	Version           int64
	PersonID          string
	ClientID          string
	PeriodStart       string
	PeriodEnd         string
	Status            InvoiceStatus
	SubtotalCents     int64
	GstTotalCents     int64
	TotalCents        int64
	PreviousInvoiceID *string
	IssuedAt          *time.Time
	PaidAt            *time.Time
	Items             []InvoiceItem
	WorkLogIDs        []string
}

// Invoice is an immutable billing document. Lifecycle methods return a new value.
type Invoice struct {
	id                string
	number            int64
	version           int64
	personID          string
	clientID          string
	periodStart       string
	periodEnd         string
	status            InvoiceStatus
	subtotalCents     int64
	gstTotalCents     int64
	totalCents        int64
	previousInvoiceID *string
	issuedAt          *time.Time
	paidAt            *time.Time
	items             []InvoiceItem
	workLogIDs        []string
}

// NewInvoice validates input and builds the invoice.
func NewInvoice(input InvoiceInput) (*Invoice, error) {
	if !isUUID(input.ID) {
		return nil, newDomainError(CodeInvoiceInvalidID, map[string]any{"id": input.ID})
	}
	if !isUUID(input.PersonID) {
		return nil, newDomainError(CodeInvoiceInvalidPersonID, map[string]any{"personId": input.PersonID})
	}
	if !isUUID(input.ClientID) {
		return nil, newDomainError(CodeInvoiceInvalidClientID, map[string]any{"clientId": input.ClientID})
	}
	if input.PreviousInvoiceID != nil && !isUUID(*input.PreviousInvoiceID) {
		return nil, newDomainError(CodeInvoiceInvalidPreviousInvoiceID, map[string]any{"previousInvoiceId": *input.PreviousInvoiceID})
	}
	if !IsValidDate(input.PeriodStart) {
		return nil, newDomainError(CodeInvoiceInvalidPeriodStart, map[string]any{"periodStart": input.PeriodStart})
	}
	if !IsValidDate(input.PeriodEnd) {
		return nil, newDomainError(CodeInvoiceInvalidPeriodEnd, map[string]any{"periodEnd": input.PeriodEnd})
	}
	// YYYY-MM-DD strings order chronologically
	if input.PeriodStart > input.PeriodEnd {
		return nil, newDomainError(CodeInvoiceInvalidPeriodRange, map[string]any{
			"periodStart": input.PeriodStart,
			"periodEnd":   input.PeriodEnd,
		})
	}
	if input.Number <= 0 {
		return nil, newDomainError(CodeInvoiceInvalidNumber, map[string]any{"number": input.Number})
	}
	if input.Version <= 0 {
		return nil, newDomainError(CodeInvoiceInvalidVersion, map[string]any{"version": input.Version})
	}
	status := input.Status
	if status == "" {
		status = InvoiceStatusDraft
	}
	if !status.IsValid() {
		return nil, newDomainError(CodeInvoiceInvalidStatus, map[string]any{"status": string(status)})
	}
	if input.SubtotalCents < 0 {
		return nil, newDomainError(CodeInvoiceInvalidSubtotal, map[string]any{"subtotalCents": input.SubtotalCents})
	}
	if input.GstTotalCents < 0 {
		return nil, newDomainError(CodeInvoiceInvalidGstTotal, map[string]any{"gstTotalCents": input.GstTotalCents})
	}
	if input.TotalCents < 0 {
		return nil, newDomainError(CodeInvoiceInvalidTotal, map[string]any{"totalCents": input.TotalCents})
	}
	if input.TotalCents != input.SubtotalCents+input.GstTotalCents {
		return nil, newDomainError(CodeInvoiceTotalMismatch, map[string]any{
			"subtotalCents": input.SubtotalCents,
			"gstTotalCents": input.GstTotalCents,
			"totalCents":    input.TotalCents,
		})
	}
	if len(input.Items) == 0 {
		return nil, newDomainError(CodeInvoiceEmptyItems, nil)
	}
	if len(input.WorkLogIDs) == 0 {
		return nil, newDomainError(CodeInvoiceEmptyWorkLogs, nil)
	}
	seen := make(map[string]struct{}, len(input.WorkLogIDs))
	for _, id := range input.WorkLogIDs {
		if _, dup := seen[id]; dup {
			return nil, newDomainError(CodeInvoiceDuplicateWorkLogID, map[string]any{"workLogId": id})
		}
		seen[id] = struct{}{}
	}

	return &Invoice{
		id:                input.ID,
		number:            input.Number,
		version:           input.Version,
		personID:          input.PersonID,
		clientID:          input.ClientID,
		periodStart:       input.PeriodStart,
		periodEnd:         input.PeriodEnd,
		status:            status,
		subtotalCents:     input.SubtotalCents,
		gstTotalCents:     input.GstTotalCents,
		totalCents:        input.TotalCents,
		previousInvoiceID: copyString(input.PreviousInvoiceID),
		issuedAt:          copyTime(input.IssuedAt),
		paidAt:            copyTime(input.PaidAt),
		items:             append([]InvoiceItem(nil), input.Items...),
		workLogIDs:        append([]string(nil), input.WorkLogIDs...),
	}, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (inv *Invoice) ID() string                 { return inv.id }
func (inv *Invoice) Number() int64              { return inv.number }
func (inv *Invoice) Version() int64             { return inv.version }
func (inv *Invoice) PersonID() string           { return inv.personID }
func (inv *Invoice) ClientID() string           { return inv.clientID }
func (inv *Invoice) PeriodStart() string        { return inv.periodStart }
func (inv *Invoice) PeriodEnd() string          { return inv.periodEnd }
func (inv *Invoice) Status() InvoiceStatus      { return inv.status }
func (inv *Invoice) SubtotalCents() int64       { return inv.subtotalCents }
func (inv *Invoice) GstTotalCents() int64       { return inv.gstTotalCents }
func (inv *Invoice) TotalCents() int64          { return inv.totalCents }
func (inv *Invoice) PreviousInvoiceID() *string { return copyString(inv.previousInvoiceID) }
func (inv *Invoice) IssuedAt() *time.Time       { return copyTime(inv.issuedAt) }
func (inv *Invoice) PaidAt() *time.Time         { return copyTime(inv.paidAt) }

// Items returns a copy of the lines in sort order as built.
func (inv *Invoice) Items() []InvoiceItem {
	return append([]InvoiceItem(nil), inv.items...)
}

// WorkLogIDs returns a copy of the referenced work log ids.
func (inv *Invoice) WorkLogIDs() []string {
	return append([]string(nil), inv.workLogIDs...)
}

func (inv *Invoice) toInput() InvoiceInput {
	return InvoiceInput{
		ID:                inv.id,
		Number:            inv.number,
		Version:           inv.version,
		PersonID:          inv.personID,
		ClientID:          inv.clientID,
		PeriodStart:       inv.periodStart,
		PeriodEnd:         inv.periodEnd,
		Status:            inv.status,
		SubtotalCents:     inv.subtotalCents,
		GstTotalCents:     inv.gstTotalCents,
		TotalCents:        inv.totalCents,
		PreviousInvoiceID: inv.previousInvoiceID,
		IssuedAt:          inv.issuedAt,
		PaidAt:            inv.paidAt,
		Items:             inv.items,
		WorkLogIDs:        inv.workLogIDs,
	}
}

func (inv *Invoice) invalidTransition(to InvoiceStatus) error {
	return newDomainError(CodeInvoiceInvalidStatusTransition, map[string]any{
		"from": string(inv.status),
		"to":   string(to),
	})
}

// Issue finalises a draft. at is supplied by the caller.
func (inv *Invoice) Issue(at time.Time) (*Invoice, error) {
	if inv.status != InvoiceStatusDraft {
		return nil, inv.invalidTransition(InvoiceStatusIssued)
	}
	in := inv.toInput()
	in.Status = InvoiceStatusIssued
	in.IssuedAt = &at
	return NewInvoice(in)
}

// MarkSent records that an issued invoice was delivered to the client.
func (inv *Invoice) MarkSent() (*Invoice, error) {
	if inv.status != InvoiceStatusIssued {
		return nil, inv.invalidTransition(InvoiceStatusSent)
	}
	in := inv.toInput()
	in.Status = InvoiceStatusSent
	return NewInvoice(in)
}

// MarkPaid settles an issued or sent invoice.
func (inv *Invoice) MarkPaid(at time.Time) (*Invoice, error) {
	if inv.status != InvoiceStatusIssued && inv.status != InvoiceStatusSent {
		return nil, inv.invalidTransition(InvoiceStatusPaid)
	}
	in := inv.toInput()
	in.Status = InvoiceStatusPaid
	in.PaidAt = &at
	return NewInvoice(in)
}
