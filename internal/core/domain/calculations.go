package domain

import "github.com/shopspring/decimal"

// MaxSafeCents is the largest cent amount accepted as an adjustment. It is the
// largest integer a JSON number represents exactly, so amounts survive a round
// trip through API clients unchanged.
const MaxSafeCents int64 = 1<<53 - 1

var (
	minutesPerHour = decimal.NewFromInt(60)
	hundred        = decimal.NewFromInt(100)
)

// CalculatePayableDuration is the worked span of period minus the break.
func CalculatePayableDuration(period WorkPeriod, breakDuration Duration) (Duration, error) {
	return period.WorkedDuration().Subtract(breakDuration)
}

// CalculateItemTotalCents prices payable minutes at rate and adds the item adjustment.
//
// The time component is rounded half-up to whole cents: payable/60 * rate.
// One minute at 10000 cents/hour is 166.67, billed as 167.
func CalculateItemTotalCents(payable Duration, rate HourlyRate, itemAdditionalCents int64) (int64, error) {
	additional, err := ValidateAdditionalAmount(itemAdditionalCents)
	if err != nil {
		return 0, err
	}
	base := decimal.NewFromInt(payable.Minutes()).
		Mul(decimal.NewFromInt(rate.Cents())).
		DivRound(minutesPerHour, 0)
	return base.IntPart() + additional, nil
}

// CalculateWorkLogTotal sums item totals.
func CalculateWorkLogTotal(items []*WorkLogItem) int64 {
	var total int64
	for _, item := range items {
		total += item.TotalCents()
	}
	return total
}

// ValidateAdditionalAmount accepts any signed cent amount within the safe range
// and returns it unchanged.
func ValidateAdditionalAmount(cents int64) (int64, error) {
	if cents > MaxSafeCents || cents < -MaxSafeCents {
		return 0, newDomainError(CodeWorkLogInvalidAdditionalAmount, map[string]any{"cents": cents})
	}
	return cents, nil
}

// CalculateDailyTotalCents is the item total plus the daily adjustment. It may
// not be negative.
func CalculateDailyTotalCents(items []*WorkLogItem, dailyAdditionalCents int64) (int64, error) {
	daily, err := ValidateAdditionalAmount(dailyAdditionalCents)
	if err != nil {
		return 0, err
	}
	total := CalculateWorkLogTotal(items) + daily
	if total < 0 {
		return 0, newDomainError(CodeWorkLogInvalidDailyTotal, map[string]any{"totalCents": total})
	}
	return total, nil
}

// CalculateGst returns subtotal * percentage / 100 rounded half-up to whole cents.
func CalculateGst(subtotalCents, gstPercentage int64) (int64, error) {
	if subtotalCents < 0 {
		return 0, newDomainError(CodeInvoiceInvalidSubtotal, map[string]any{"subtotalCents": subtotalCents})
	}
	if gstPercentage < 0 {
		return 0, newDomainError(CodeInvoiceInvalidGstPercentage, map[string]any{"gstPercentage": gstPercentage})
	}
	gst := decimal.NewFromInt(subtotalCents).
		Mul(decimal.NewFromInt(gstPercentage)).
		DivRound(hundred, 0)
	return gst.IntPart(), nil
}
