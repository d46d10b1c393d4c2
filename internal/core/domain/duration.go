package domain

// Duration is a non-negative whole number of minutes.
type Duration struct {
	minutes int64
}

// NewDuration validates minutes and wraps them.
func NewDuration(minutes int64) (Duration, error) {
	if minutes < 0 {
		return Duration{}, newDomainError(CodeWorkLogInvalidDuration, map[string]any{"minutes": minutes})
	}
	return Duration{minutes: minutes}, nil
}

// Minutes returns the duration length.
func (d Duration) Minutes() int64 {
	return d.minutes
}

// Subtract returns d - other. A break longer than the worked time is rejected.
func (d Duration) Subtract(other Duration) (Duration, error) {
	if other.minutes > d.minutes {
		return Duration{}, newDomainError(CodeWorkLogInvalidBreakDuration, map[string]any{
			"workedMinutes": d.minutes,
			"breakMinutes":  other.minutes,
		})
	}
	return NewDuration(d.minutes - other.minutes)
}
