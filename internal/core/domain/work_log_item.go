package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNotesLength bounds free-text notes on work logs and their items.
const MaxNotesLength = 1000

// WorkLogItemInput carries the raw values for one billable slice of a day.
type WorkLogItemInput struct {
	ID              string
	Location        string
	StartAt         string // RFC 3339 with an explicit zone
	EndAt           string
	BreakMinutes    int64
	HourlyRateCents int64
	AdditionalCents int64
	Notes           *string
}

// WorkLogItem is an immutable, priced period of work at one location.
type WorkLogItem struct {
	id              string
	location        string
	period          WorkPeriod
	breakDuration   Duration
	hourlyRate      HourlyRate
	additionalCents int64
	notes           *string
	payableDuration Duration
	totalCents      int64
}

// NewWorkLogItem validates input and prices the item.
func NewWorkLogItem(input WorkLogItemInput) (*WorkLogItem, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, newDomainError(CodeWorkLogItemInvalidID, nil)
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, newDomainError(CodeWorkLogItemInvalidLocation, nil)
	}
	notes, ok := normalizeNotes(input.Notes)
	if !ok {
		return nil, newDomainError(CodeWorkLogItemInvalidNotes, map[string]any{"maxLength": MaxNotesLength})
	}

	period, err := NewWorkPeriod(input.StartAt, input.EndAt)
	if err != nil {
		return nil, err
	}
	breakDuration, err := NewDuration(input.BreakMinutes)
	if err != nil {
		return nil, err
	}
	rate, err := NewHourlyRate(input.HourlyRateCents)
	if err != nil {
		return nil, err
	}
	additional, err := ValidateAdditionalAmount(input.AdditionalCents)
	if err != nil {
		return nil, err
	}

	payable, err := CalculatePayableDuration(period, breakDuration)
	if err != nil {
		return nil, err
	}
	total, err := CalculateItemTotalCents(payable, rate, additional)
	if err != nil {
		return nil, err
	}

	return &WorkLogItem{
		id:              id,
		location:        location,
		period:          period,
		breakDuration:   breakDuration,
		hourlyRate:      rate,
		additionalCents: additional,
		notes:           notes,
		payableDuration: payable,
		totalCents:      total,
	}, nil
}

// normalizeNotes trims notes, maps blank to nil and enforces the length cap.
func normalizeNotes(notes *string) (*string, bool) {
	if notes == nil {
		return nil, true
	}
	trimmed := strings.TrimSpace(*notes)
	if utf8.RuneCountInString(trimmed) > MaxNotesLength {
		return nil, false
	}
	if trimmed == "" {
		return nil, true
	}
	return &trimmed, true
}

func (i *WorkLogItem) ID() string                { return i.id }
func (i *WorkLogItem) Location() string          { return i.location }
func (i *WorkLogItem) Period() WorkPeriod        { return i.period }
func (i *WorkLogItem) StartAt() time.Time        { return i.period.StartAt() }
func (i *WorkLogItem) EndAt() time.Time          { return i.period.EndAt() }
func (i *WorkLogItem) BreakDuration() Duration   { return i.breakDuration }
func (i *WorkLogItem) WorkedDuration() Duration  { return i.period.WorkedDuration() }
func (i *WorkLogItem) PayableDuration() Duration { return i.payableDuration }
func (i *WorkLogItem) HourlyRate() HourlyRate    { return i.hourlyRate }
func (i *WorkLogItem) AdditionalCents() int64    { return i.additionalCents }
func (i *WorkLogItem) TotalCents() int64         { return i.totalCents }
func (i *WorkLogItem) ReferenceDate() string     { return i.period.ReferenceDate() }
func (i *WorkLogItem) IsSingleDay() bool         { return i.period.IsSingleDay() }

// Notes returns the trimmed notes, or nil when none were given.
func (i *WorkLogItem) Notes() *string {
	if i.notes == nil {
		return nil
	}
	n := *i.notes
	return &n
}
