package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	dailyAdditionalDescription = "Daily additional adjustments"
	locationDescriptionFormat  = "Work performed at %s"
)

// BuildInvoiceDraftInput selects the work logs to bill and the invoice identity.
type BuildInvoiceDraftInput struct {
	InvoiceID         string
	InvoiceNumber     int64
	Version           int64 // defaults to 1
	PersonID          string
	ClientID          string
	PreviousInvoiceID *string
	WorkLogs          []*WorkLog
	GstPercentage     int64
	NewID             func() string // invoice item ids; defaults to uuid.NewString
}

// bucket accumulates the cents billed for one invoice line.
type bucket struct {
	location *string
	amount   int64
}

// CheckDraftSelection applies the selection rules of BuildInvoiceDraft: a
// non-empty set of distinct draft logs, all for personID and clientID. It
// returns the work log ids in input order.
func CheckDraftSelection(personID, clientID string, workLogs []*WorkLog) ([]string, error) {
	if len(workLogs) == 0 {
		return nil, newDomainError(CodeInvoiceDraftEmptySelection, nil)
	}

	workLogIDs := make([]string, 0, len(workLogs))
	seen := make(map[string]struct{}, len(workLogs))
	for _, wl := range workLogs {
		if _, dup := seen[wl.ID()]; dup {
			return nil, newDomainError(CodeInvoiceDraftDuplicateWorkLog, map[string]any{"workLogId": wl.ID()})
		}
		seen[wl.ID()] = struct{}{}
		workLogIDs = append(workLogIDs, wl.ID())
	}
	for _, wl := range workLogs {
		if wl.PersonID() != personID {
			return nil, newDomainError(CodeInvoiceDraftMixedPersons, map[string]any{
				"workLogId": wl.ID(),
				"personId":  wl.PersonID(),
			})
		}
	}
	for _, wl := range workLogs {
		if wl.ClientID() != clientID {
			return nil, newDomainError(CodeInvoiceDraftMixedClients, map[string]any{
				"workLogId": wl.ID(),
				"clientId":  wl.ClientID(),
			})
		}
	}
	for _, wl := range workLogs {
		if wl.Status() != WorkLogStatusDraft {
			return nil, newDomainError(CodeInvoiceDraftIneligibleStatus, map[string]any{
				"workLogId": wl.ID(),
				"status":    string(wl.Status()),
			})
		}
	}
	return workLogIDs, nil
}

// BuildInvoiceDraft groups the charges of draft work logs by location and
// assembles a draft invoice with GST applied on the subtotal.
func BuildInvoiceDraft(input BuildInvoiceDraftInput) (*Invoice, error) {
	workLogIDs, err := CheckDraftSelection(input.PersonID, input.ClientID, input.WorkLogs)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd := input.WorkLogs[0].WorkDate(), input.WorkLogs[0].WorkDate()
	for _, wl := range input.WorkLogs[1:] {
		if wl.WorkDate() < periodStart {
			periodStart = wl.WorkDate()
		}
		if wl.WorkDate() > periodEnd {
			periodEnd = wl.WorkDate()
		}
	}

	items, subtotal, err := groupByLocation(input.WorkLogs, input.NewID)
	if err != nil {
		return nil, err
	}
	gst, err := CalculateGst(subtotal, input.GstPercentage)
	if err != nil {
		return nil, err
	}

	version := input.Version
	if version == 0 {
		version = 1
	}

	return NewInvoice(InvoiceInput{
		ID:                input.InvoiceID,
		Number:            input.InvoiceNumber,
		Version:           version,
		PersonID:          input.PersonID,
		ClientID:          input.ClientID,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		Status:            InvoiceStatusDraft,
		SubtotalCents:     subtotal,
		GstTotalCents:     gst,
		TotalCents:        subtotal + gst,
		PreviousInvoiceID: input.PreviousInvoiceID,
		Items:             items,
		WorkLogIDs:        workLogIDs,
	})
}

// groupByLocation sums item totals per location in first-seen order. Non-zero
// daily adjustments go into one extra bucket with no location.
func groupByLocation(workLogs []*WorkLog, newID func() string) ([]InvoiceItem, int64, error) {
	if newID == nil {
		newID = uuid.NewString
	}

	var buckets []*bucket
	byLocation := make(map[string]*bucket)
	var daily *bucket

	for _, wl := range workLogs {
		for _, item := range wl.Items() {
			b, ok := byLocation[item.Location()]
			if !ok {
				location := item.Location()
				b = &bucket{location: &location}
				byLocation[location] = b
				buckets = append(buckets, b)
			}
			b.amount += item.TotalCents()
		}
		if wl.DailyAdditionalCents() != 0 {
			if daily == nil {
				daily = &bucket{}
				buckets = append(buckets, daily)
			}
			daily.amount += wl.DailyAdditionalCents()
		}
	}

	items := make([]InvoiceItem, 0, len(buckets))
	var subtotal int64
	for i, b := range buckets {
		description := dailyAdditionalDescription
		if b.location != nil {
			description = fmt.Sprintf(locationDescriptionFormat, *b.location)
		}
		item, err := NewInvoiceItem(InvoiceItemInput{
			ID:          newID(),
			Description: description,
			Location:    b.location,
			AmountCents: b.amount,
			SortOrder:   i,
		})
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		subtotal += b.amount
	}
	return items, subtotal, nil
}
