package market

import "github.com/shopspring/decimal"

type Window struct {
	Label  string
	Offset int
}

const (
	DayOffset           = 1
	MonthOffset         = 21
	YearOffset          = 252
	AlternateYearOffset = 250
)

// Windows returns the 1D/1M/1Y lookbacks in trading days.
// yearOffset <= 0 selects YearOffset.
func Windows(yearOffset int) []Window {
	if yearOffset <= 0 {
		yearOffset = YearOffset
	}
	return []Window{
		{Label: "1D", Offset: DayOffset},
		{Label: "1M", Offset: MonthOffset},
		{Label: "1Y", Offset: yearOffset},
	}
}

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Color is the display tag paired with a direction.
func (d Direction) Color() string {
	if d == Down {
		return "red"
	}
	return "green"
}

// DirectionOf classifies a percent change. Zero counts as up.
func DirectionOf(pct float64) Direction {
	if pct >= 0 {
		return Up
	}
	return Down
}

var hundred = decimal.NewFromInt(100)

// PercentChange compares the latest close with the close d trading days earlier.
// It reports false when there are fewer than d+1 closes or the base price is zero.
func PercentChange(closes []decimal.Decimal, d int) (float64, bool) {
	if d < 0 || len(closes) < d+1 {
		return 0, false
	}

	current := closes[len(closes)-1]
	base := closes[len(closes)-1-d]
	if base.IsZero() {
		return 0, false
	}

	pct := current.Sub(base).Div(base).Mul(hundred)
	return pct.InexactFloat64(), true
}
