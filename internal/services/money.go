package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/family-savings/internal/errs"
)

const dateLayout = "2006-01-02"

var (
	hundred = decimal.NewFromInt(100)
	// maxAmount keeps every stored cent value and ledger sum well inside int64.
	maxAmount = decimal.NewFromInt(1_000_000_000)
)

// checkAmount rejects request amounts beyond maxAmount in either direction.
func checkAmount(field string, d decimal.Decimal) error {
	if d.Abs().GreaterThan(maxAmount) {
		return errs.NewValidationError(fmt.Sprintf("%s must be at most %s", field, maxAmount))
	}
	return nil
}

// toCents rounds d half away from zero to whole cents.
func toCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// share returns pct percent of cents, rounded to the cent.
func share(cents int64, pct int) int64 {
	return decimal.NewFromInt(cents).Mul(decimal.NewFromInt(int64(pct))).Div(hundred).Round(0).IntPart()
}

// ceilDiv divides two positive amounts rounding up.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// fullMonths counts whole months from now until target. A target in the
// past gives a negative count.
func fullMonths(now, target time.Time) int {
	months := (target.Year()-now.Year())*12 + int(target.Month()-now.Month())
	if months > 0 && target.Day() < now.Day() {
		months--
	}
	if months < 0 && target.Day() > now.Day() {
		months++
	}
	return months
}

func decimalInt(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}
