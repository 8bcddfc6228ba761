package market

import (
	"math"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"
)

func closesOf(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func series(n int, f func(i int) float64) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.NewFromFloat(f(i))
	}
	return out
}

func approx(t *testing.T, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > 1e-9 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name   string
		closes []decimal.Decimal
		offset int
		want   float64
		wantOK bool
	}{
		{"one day up", closesOf(100, 110), 1, 10, true},
		{"one day down", closesOf(200, 150), 1, -25, true},
		{"flat", closesOf(50, 50), 1, 0, true},
		{"exactly d+1 closes", closesOf(80, 90, 100), 2, 25, true},
		{"too short", closesOf(100, 110), 2, 0, false},
		{"empty", nil, 1, 0, false},
		{"zero base", closesOf(0, 10), 1, 0, false},
		{"negative offset", closesOf(1, 2), -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PercentChange(tt.closes, tt.offset)
			assert.Equal(t, tt.wantOK, ok)
			approx(t, tt.want, got)
		})
	}
}

func TestPercentChange_YearWindows(t *testing.T) {
	closes := series(260, func(i int) float64 { return 100 + float64(i) })
	current := 359.0

	for _, w := range Windows(YearOffset) {
		got, ok := PercentChange(closes, w.Offset)
		base := 100 + float64(259-w.Offset)
		assert.Equal(t, true, ok)
		approx(t, (current-base)/base*100, got)
	}

	_, ok := PercentChange(closes[:YearOffset], YearOffset)
	assert.Equal(t, false, ok)

	_, ok = PercentChange(closes[:YearOffset+1], YearOffset)
	assert.Equal(t, true, ok)
}

func TestWindows(t *testing.T) {
	w := Windows(0)
	assert.Equal(t, 3, len(w))
	assert.Equal(t, "1D", w[0].Label)
	assert.Equal(t, 1, w[0].Offset)
	assert.Equal(t, 21, w[1].Offset)
	assert.Equal(t, 252, w[2].Offset)

	assert.Equal(t, 250, Windows(AlternateYearOffset)[2].Offset)
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, Up, DirectionOf(0))
	assert.Equal(t, "green", DirectionOf(0).Color())
	assert.Equal(t, Up, DirectionOf(0.01))
	assert.Equal(t, Down, DirectionOf(-0.01))
	assert.Equal(t, "red", DirectionOf(-3).Color())
}
