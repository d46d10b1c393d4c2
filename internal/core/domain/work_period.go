package domain

import (
	"regexp"
	"time"
)

// MaxPeriodMinutes caps a single work period at one day.
const MaxPeriodMinutes = 24 * 60

// explicitZonePattern matches a trailing UTC marker or numeric offset. Strings
// without one would otherwise be read in some implicit zone, so they are refused
// before any parsing happens.
var explicitZonePattern = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)

// compactOffsetLayout accepts offsets written without a colon, e.g. +0530.
const compactOffsetLayout = "2006-01-02T15:04:05.999999999-0700"

// WorkPeriod is a minute-granular, at most 24h long span between two instants.
type WorkPeriod struct {
	startAt time.Time
	endAt   time.Time
}

// NewWorkPeriod parses two RFC 3339 timestamps and validates the span between them.
func NewWorkPeriod(startAt, endAt string) (WorkPeriod, error) {
	start, err := parseZonedTimestamp("startAt", startAt)
	if err != nil {
		return WorkPeriod{}, err
	}
	end, err := parseZonedTimestamp("endAt", endAt)
	if err != nil {
		return WorkPeriod{}, err
	}
	return NewWorkPeriodFromTimes(start, end)
}

// NewWorkPeriodFromTimes validates a span between two already-parsed instants.
func NewWorkPeriodFromTimes(start, end time.Time) (WorkPeriod, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return WorkPeriod{}, newDomainError(CodeWorkLogInvalidPeriod, map[string]any{
			"startAt": start.Format(time.RFC3339Nano),
			"endAt":   end.Format(time.RFC3339Nano),
		})
	}

	span := end.Sub(start)
	if span%time.Minute != 0 {
		return WorkPeriod{}, newDomainError(CodeWorkLogInvalidPeriodPrecision, map[string]any{
			"spanMilliseconds": span.Milliseconds(),
		})
	}
	if span > MaxPeriodMinutes*time.Minute {
		return WorkPeriod{}, newDomainError(CodeWorkLogDurationExceedsLimit, map[string]any{
			"minutes":    int64(span / time.Minute),
			"maxMinutes": MaxPeriodMinutes,
		})
	}

	return WorkPeriod{startAt: start.UTC(), endAt: end.UTC()}, nil
}

func parseZonedTimestamp(field, value string) (time.Time, error) {
	if !explicitZonePattern.MatchString(value) {
		return time.Time{}, newDomainError(CodeWorkLogInvalidPeriodTimezone, map[string]any{
			"field": field,
			"value": value,
		})
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		t, err = time.Parse(compactOffsetLayout, value)
	}
	if err != nil {
		return time.Time{}, newDomainError(CodeWorkLogInvalidPeriod, map[string]any{
			"field": field,
			"value": value,
		})
	}
	return t, nil
}

// StartAt returns the period start in UTC.
func (p WorkPeriod) StartAt() time.Time { return p.startAt }

// EndAt returns the period end in UTC.
func (p WorkPeriod) EndAt() time.Time { return p.endAt }

// WorkedDuration is the whole span of the period.
func (p WorkPeriod) WorkedDuration() Duration {
	// the constructor guarantees a positive whole number of minutes
	return Duration{minutes: int64(p.endAt.Sub(p.startAt) / time.Minute)}
}

// ReferenceDate is the UTC calendar date the period starts on.
func (p WorkPeriod) ReferenceDate() string {
	return FormatDate(p.startAt)
}

// IsSingleDay reports whether start and end fall on the same UTC calendar date.
func (p WorkPeriod) IsSingleDay() bool {
	return FormatDate(p.startAt) == FormatDate(p.endAt)
}
