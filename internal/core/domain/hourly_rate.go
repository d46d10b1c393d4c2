package domain

// HourlyRate is a positive amount of cents charged per hour.
type HourlyRate struct {
	cents int64
}

// NewHourlyRate validates cents and wraps them.
func NewHourlyRate(cents int64) (HourlyRate, error) {
	if cents <= 0 || cents > MaxSafeCents {
		return HourlyRate{}, newDomainError(CodeWorkLogInvalidHourlyRate, map[string]any{"cents": cents})
	}
	return HourlyRate{cents: cents}, nil
}

// Cents returns the rate in cents per hour.
func (r HourlyRate) Cents() int64 {
	return r.cents
}
