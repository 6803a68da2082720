package utils

import (
	"fmt"
	"time"

	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount shown to staff (Bangladeshi taka).
const CurrencySymbol = "৳"

// InterestStartOffsetMonths is the gap between disbursement and the first interest month.
const InterestStartOffsetMonths = 2

var hundred = decimal.NewFromInt(100)

// InterestDue is the breakdown shown on the interest payment form.
type InterestDue struct {
	PreviousInterestDue  decimal.Decimal `json:"previousInterestDue"`
	CurrentMonthInterest decimal.Decimal `json:"currentMonthInterest"`
	TotalDue             decimal.Decimal `json:"totalDue"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	DueAfterPayment      decimal.Decimal `json:"dueAfterPayment"`
}

// CalculateInterestDue computes the due left after paying paid against
// previous + current. paid must lie in [0, previous+current].
func CalculateInterestDue(previous, current, paid decimal.Decimal) (InterestDue, error) {
	total := previous.Add(current)
	due := InterestDue{
		PreviousInterestDue:  previous,
		CurrentMonthInterest: current,
		TotalDue:             total,
		PaidAmount:           paid,
		DueAfterPayment:      total.Sub(paid),
	}

	if paid.IsNegative() {
		return due, customError.NewValidationError("paidAmount", "Amount must be greater than or equal to 0")
	}
	if paid.GreaterThan(total) {
		return due, customError.NewValidationError("paidAmount",
			fmt.Sprintf("Amount cannot exceed %s", FormatAmount(total)))
	}

	return due, nil
}

// CurrentMonthInterest calculates one month of interest on the outstanding balance
// Formula: outstanding * monthlyRate / 100
func CurrentMonthInterest(outstanding, monthlyRatePercent decimal.Decimal) decimal.Decimal {
	return outstanding.Mul(monthlyRatePercent).Div(hundred)
}

// PreviousInterestDue is interest accrued so far minus interest already paid.
func PreviousInterestDue(totalInterest, totalPaid decimal.Decimal) decimal.Decimal {
	return totalInterest.Sub(totalPaid)
}

// DayStart truncates t to midnight of its day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// MonthStart truncates t to the first day of its month in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// AddMonths moves n calendar months from the month containing t.
func AddMonths(t time.Time, n int, loc *time.Location) time.Time {
	return MonthStart(t, loc).AddDate(0, n, 0)
}

// InterestStartMonth derives the first interest month from the disbursement month.
func InterestStartMonth(disbursement time.Time, loc *time.Location) time.Time {
	return AddMonths(disbursement, InterestStartOffsetMonths, loc)
}

// NextInterestMonth returns the month the next interest payment targets:
// one month after the latest recorded payment, or the interest start month
// when nothing has been recorded yet.
func NextInterestMonth(disbursement time.Time, paymentDates []time.Time, loc *time.Location) time.Time {
	if len(paymentDates) == 0 {
		return InterestStartMonth(disbursement, loc)
	}

	latest := paymentDates[0]
	for _, d := range paymentDates[1:] {
		if d.After(latest) {
			latest = d
		}
	}

	return AddMonths(latest, 1, loc)
}

// FormatAmount renders an amount with the currency symbol, e.g. ৳1200.
func FormatAmount(amount decimal.Decimal) string {
	return CurrencySymbol + amount.String()
}

// FormatGroupedAmount renders an amount with thousands separators, e.g. ৳10,000,000.
func FormatGroupedAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	whole := amount.Truncate(0).String()
	frac := ""
	if !amount.Equal(amount.Truncate(0)) {
		s := amount.String()
		frac = s[len(whole):]
	}

	grouped := make([]byte, 0, len(whole)+len(whole)/3)
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, whole[i])
	}

	return sign + CurrencySymbol + string(grouped) + frac
}

// DecimalFromFloat converts float64 to decimal.Decimal
func DecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
