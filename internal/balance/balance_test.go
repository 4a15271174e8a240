package balance_test

import (
	"testing"
	"time"

	"go-hradmin/internal/balance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestMonthsWorked(t *testing.T) {
	tests := []struct {
		name string
		hire time.Time
		asOf time.Time
		want int
	}{
		{"same day", date(2024, 1, 15), date(2024, 1, 15), 0},
		{"45 days is one month", date(2024, 1, 1), date(2024, 2, 15), 1},
		{"one day short of a month", date(2024, 1, 15), date(2024, 2, 14), 0},
		{"exact month boundary", date(2024, 1, 15), date(2024, 2, 15), 1},
		{"end of month clamps", date(2024, 1, 31), date(2024, 2, 29), 1},
		{"full year", date(2023, 3, 1), date(2024, 3, 1), 12},
		{"hire time of day ignored", time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC), date(2024, 2, 15), 1},
		{"future hire is negative", date(2024, 5, 1), date(2024, 2, 1), -3},
		{"future hire partial month truncates toward zero", date(2024, 5, 20), date(2024, 3, 1), -2},
		{"asOf west of UTC counts the UTC date", date(2024, 1, 1), time.Date(2024, 2, 29, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)), 2},
		{"asOf east of UTC counts the UTC date", date(2024, 1, 1), time.Date(2024, 3, 1, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, balance.MonthsWorked(tt.hire, tt.asOf))
		})
	}
}

func TestCompute(t *testing.T) {
	t.Run("success - accrual plus manual plus initial", func(t *testing.T) {
		initial := dec("2.5")
		got := balance.Compute(date(2023, 1, 1), dec("1"), &initial, dec("4"), date(2024, 1, 1))

		assert.Equal(t, "18.50", got.TotalAccrued.StringFixed(2))
		assert.Equal(t, "4.00", got.Taken.StringFixed(2))
		assert.Equal(t, "14.50", got.Balance.StringFixed(2))
	})

	t.Run("success - nil initial balance counts as zero", func(t *testing.T) {
		got := balance.Compute(date(2024, 1, 1), decimal.Zero, nil, decimal.Zero, date(2024, 3, 1))

		assert.Equal(t, "2.50", got.TotalAccrued.StringFixed(2))
		assert.Equal(t, "2.50", got.Balance.StringFixed(2))
	})

	t.Run("success - negative balance is returned as is", func(t *testing.T) {
		got := balance.Compute(date(2024, 1, 1), decimal.Zero, nil, dec("5"), date(2024, 2, 1))

		assert.Equal(t, "-3.75", got.Balance.StringFixed(2))
	})

	t.Run("success - future hire date is not clamped", func(t *testing.T) {
		got := balance.Compute(date(2025, 1, 1), decimal.Zero, nil, decimal.Zero, date(2024, 11, 1))

		assert.Equal(t, "-2.50", got.TotalAccrued.StringFixed(2))
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		got := balance.Compute(date(2024, 1, 1), dec("0.005"), nil, dec("0.0149"), date(2024, 1, 1))

		assert.Equal(t, "0.01", got.TotalAccrued.StringFixed(2))
		assert.Equal(t, "0.00", got.Balance.StringFixed(2))

		neg := balance.Round2(dec("-0.125"))
		assert.Equal(t, "-0.13", neg.StringFixed(2))
	})
}

func TestCompute_Monotonic(t *testing.T) {
	hire := date(2022, 8, 31)
	prev := balance.Compute(hire, dec("1.5"), nil, dec("3"), hire)

	for day := 1; day <= 800; day++ {
		asOf := hire.AddDate(0, 0, day)
		cur := balance.Compute(hire, dec("1.5"), nil, dec("3"), asOf)

		assert.False(t, cur.TotalAccrued.LessThan(prev.TotalAccrued), "accrual decreased at %s", asOf)
		step := cur.TotalAccrued.Sub(prev.TotalAccrued)
		assert.True(t, step.IsZero() || step.Equal(balance.AccrualRate), "unexpected step %s at %s", step, asOf)
		assert.True(t, cur.Balance.Equal(balance.Round2(cur.TotalAccrued.Sub(cur.Taken))))
		prev = cur
	}
}

func TestDaySpan(t *testing.T) {
	assert.Equal(t, 5, balance.DaySpan(date(2024, 3, 1), date(2024, 3, 5)))
	assert.Equal(t, 1, balance.DaySpan(date(2024, 3, 1), time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, balance.DaySpan(date(2024, 2, 28), date(2024, 2, 29)))
}
