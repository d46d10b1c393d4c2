package domain

import (
	"strings"
	"time"
)

// WorkLogInput carries the raw values for a work log. Status and Items are only
// set when rehydrating a stored log; new logs start as drafts with no items.
type WorkLogInput struct {
	ID                   string
	PersonID             string
	ClientID             string
	WorkDate             string // YYYY-MM-DD
	Notes                *string
	DailyAdditionalCents int64
	Status               WorkLogStatus
	Items                []*WorkLogItem
}

// WorkLog is the aggregate for one person's work for one client on one day.
// It exclusively owns its items; all changes go through its methods.
type WorkLog struct {
	id                   string
	personID             string
	clientID             string
	workDate             string
	notes                *string
	dailyAdditionalCents int64
	status               WorkLogStatus
	items                map[string]*WorkLogItem
	order                []string
}

// NewWorkLog validates input and builds the aggregate. Supplied items pass
// through the same checks as AddItem, except the lock check, so that invoiced
// logs can be loaded from storage.
func NewWorkLog(input WorkLogInput) (*WorkLog, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, newDomainError(CodeWorkLogInvalidID, nil)
	}
	personID := strings.TrimSpace(input.PersonID)
	if personID == "" {
		return nil, newDomainError(CodeWorkLogInvalidPersonID, nil)
	}
	clientID := strings.TrimSpace(input.ClientID)
	if clientID == "" {
		return nil, newDomainError(CodeWorkLogInvalidClientID, nil)
	}
	if !IsValidDate(input.WorkDate) {
		return nil, newDomainError(CodeWorkLogInvalidDate, map[string]any{"workDate": input.WorkDate})
	}
	notes, ok := normalizeNotes(input.Notes)
	if !ok {
		return nil, newDomainError(CodeWorkLogInvalidNotes, map[string]any{"maxLength": MaxNotesLength})
	}
	daily, err := ValidateAdditionalAmount(input.DailyAdditionalCents)
	if err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = WorkLogStatusDraft
	}
	if !status.IsValid() {
		return nil, newDomainError(CodeWorkLogInvalidStatus, map[string]any{"status": string(status)})
	}

	wl := &WorkLog{
		id:                   id,
		personID:             personID,
		clientID:             clientID,
		workDate:             input.WorkDate,
		notes:                notes,
		dailyAdditionalCents: daily,
		status:               status,
		items:                make(map[string]*WorkLogItem, len(input.Items)),
	}
	for _, item := range input.Items {
		if err := wl.checkItem(item); err != nil {
			return nil, err
		}
		wl.insert(item)
	}
	if _, err := CalculateDailyTotalCents(wl.Items(), wl.dailyAdditionalCents); err != nil {
		return nil, err
	}
	return wl, nil
}

func (w *WorkLog) ensureMutable() error {
	if w.status == WorkLogStatusInvoiced {
		return newDomainError(CodeWorkLogLocked, map[string]any{"workLogId": w.id})
	}
	return nil
}

func (w *WorkLog) checkItem(item *WorkLogItem) error {
	if !item.IsSingleDay() || item.ReferenceDate() != w.workDate {
		return newDomainError(CodeWorkLogItemDateMismatch, map[string]any{
			"itemId":        item.ID(),
			"workDate":      w.workDate,
			"referenceDate": item.ReferenceDate(),
		})
	}
	if _, exists := w.items[item.ID()]; exists {
		return newDomainError(CodeWorkLogItemAlreadyExists, map[string]any{"itemId": item.ID()})
	}
	return nil
}

func (w *WorkLog) insert(item *WorkLogItem) {
	w.items[item.ID()] = item
	w.order = append(w.order, item.ID())
}

// AddItem attaches item to the log.
func (w *WorkLog) AddItem(item *WorkLogItem) error {
	if err := w.ensureMutable(); err != nil {
		return err
	}
	if err := w.checkItem(item); err != nil {
		return err
	}
	if _, err := CalculateDailyTotalCents(append(w.Items(), item), w.dailyAdditionalCents); err != nil {
		return err
	}
	w.insert(item)
	return nil
}

// RemoveItem detaches the item with the given id.
func (w *WorkLog) RemoveItem(itemID string) error {
	if err := w.ensureMutable(); err != nil {
		return err
	}
	if _, exists := w.items[itemID]; !exists {
		return newDomainError(CodeWorkLogItemNotFound, map[string]any{"itemId": itemID})
	}

	remaining := make([]*WorkLogItem, 0, len(w.order)-1)
	order := make([]string, 0, len(w.order)-1)
	for _, id := range w.order {
		if id != itemID {
			remaining = append(remaining, w.items[id])
			order = append(order, id)
		}
	}
	if _, err := CalculateDailyTotalCents(remaining, w.dailyAdditionalCents); err != nil {
		return err
	}

	delete(w.items, itemID)
	w.order = order
	return nil
}

// SetDailyAdditional replaces the flat daily adjustment.
func (w *WorkLog) SetDailyAdditional(cents int64) error {
	if err := w.ensureMutable(); err != nil {
		return err
	}
	daily, err := ValidateAdditionalAmount(cents)
	if err != nil {
		return err
	}
	if _, err := CalculateDailyTotalCents(w.Items(), daily); err != nil {
		return err
	}
	w.dailyAdditionalCents = daily
	return nil
}

// MarkLinked moves a non-empty draft log to linked.
func (w *WorkLog) MarkLinked() error {
	if err := w.CanLink(); err != nil {
		return err
	}
	return w.transition(WorkLogActionLink)
}

// CanLink reports the error MarkLinked would return, without changing the log.
func (w *WorkLog) CanLink() error {
	if len(w.order) == 0 {
		return newDomainError(CodeWorkLogEmpty, map[string]any{"workLogId": w.id})
	}
	_, err := NextWorkLogStatus(w.status, WorkLogActionLink)
	return err
}

// MarkInvoiced moves a linked log to invoiced, after which it is locked.
func (w *WorkLog) MarkInvoiced() error {
	return w.transition(WorkLogActionInvoice)
}

func (w *WorkLog) transition(action WorkLogAction) error {
	next, err := NextWorkLogStatus(w.status, action)
	if err != nil {
		return err
	}
	w.status = next
	return nil
}

func (w *WorkLog) ID() string                  { return w.id }
func (w *WorkLog) PersonID() string            { return w.personID }
func (w *WorkLog) ClientID() string            { return w.clientID }
func (w *WorkLog) WorkDate() string            { return w.workDate }
func (w *WorkLog) DailyAdditionalCents() int64 { return w.dailyAdditionalCents }
func (w *WorkLog) Status() WorkLogStatus       { return w.status }
func (w *WorkLog) IsLocked() bool              { return w.status == WorkLogStatusInvoiced }

// Notes returns the trimmed notes, or nil when none were given.
func (w *WorkLog) Notes() *string {
	if w.notes == nil {
		return nil
	}
	n := *w.notes
	return &n
}

// Items returns the items in insertion order. The slice is a fresh copy.
func (w *WorkLog) Items() []*WorkLogItem {
	items := make([]*WorkLogItem, 0, len(w.order))
	for _, id := range w.order {
		items = append(items, w.items[id])
	}
	return items
}

// Item looks up an item by id.
func (w *WorkLog) Item(itemID string) (*WorkLogItem, bool) {
	item, ok := w.items[itemID]
	return item, ok
}

// TotalCents is recomputed from the current items on every call.
func (w *WorkLog) TotalCents() int64 {
	return CalculateWorkLogTotal(w.Items()) + w.dailyAdditionalCents
}

func (w *WorkLog) TotalBreakMinutes() int64 {
	var total int64
	for _, item := range w.items {
		total += item.BreakDuration().Minutes()
	}
	return total
}

func (w *WorkLog) TotalWorkedMinutes() int64 {
	var total int64
	for _, item := range w.items {
		total += item.WorkedDuration().Minutes()
	}
	return total
}

func (w *WorkLog) TotalPayableMinutes() int64 {
	var total int64
	for _, item := range w.items {
		total += item.PayableDuration().Minutes()
	}
	return total
}

// StartAt is the earliest item start, or nil for an empty log.
func (w *WorkLog) StartAt() *time.Time {
	var earliest *time.Time
	for _, item := range w.items {
		start := item.StartAt()
		if earliest == nil || start.Before(*earliest) {
			earliest = &start
		}
	}
	return earliest
}

// EndAt is the latest item end, or nil for an empty log.
func (w *WorkLog) EndAt() *time.Time {
	var latest *time.Time
	for _, item := range w.items {
		end := item.EndAt()
		if latest == nil || end.After(*latest) {
			latest = &end
		}
	}
	return latest
}
