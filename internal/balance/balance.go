// Package balance computes vacation entitlement from employment time.
//
// Accrual runs on the UTC calendar: asOf is converted to UTC before months are
// counted, so an instant late on the last day of a month in a western zone
// already counts toward the next month.
package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualRate is the number of vacation days earned per whole month worked (15 days a year).
var AccrualRate = decimal.RequireFromString("1.25")

type Result struct {
	TotalAccrued decimal.Decimal
	Taken        decimal.Decimal
	Balance      decimal.Decimal
}

// Compute returns accrued days and the remaining balance as of asOf.
// A nil initialBalance counts as zero. Neither total is clamped: a future hire date
// yields negative accrual and over-approved employees carry a negative balance.
func Compute(hireDate time.Time, manualAccrued decimal.Decimal, initialBalance *decimal.Decimal, taken decimal.Decimal, asOf time.Time) Result {
	months := MonthsWorked(hireDate, asOf)
	auto := AccrualRate.Mul(decimal.NewFromInt(int64(months)))

	total := auto.Add(manualAccrued)
	if initialBalance != nil {
		total = total.Add(*initialBalance)
	}
	total = Round2(total)

	return Result{
		TotalAccrued: total,
		Taken:        taken,
		Balance:      Round2(total.Sub(taken)),
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MonthsWorked counts whole calendar months between hireDate (taken at start of day) and asOf
// on the UTC calendar, truncating toward zero. Month steps clamp to the end of shorter months,
// so Jan 31 plus one month is the last day of February.
func MonthsWorked(hireDate, asOf time.Time) int {
	from := StartOfDay(hireDate)
	to := asOf.UTC()

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := AddMonths(from, months)

	if !to.Before(from) {
		if anchor.After(to) {
			months--
		}
	} else if anchor.Before(to) {
		months++
	}
	return months
}

// AddMonths moves t by n calendar months keeping the day of month where it exists.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay drops the time of day, keeping the calendar date in UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaySpan is the inclusive number of calendar days from start to end.
func DaySpan(start, end time.Time) int {
	s, e := StartOfDay(start), StartOfDay(end)
	return int(e.Sub(s).Hours()/24) + 1
}
