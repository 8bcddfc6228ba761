package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/go-playground/assert/v2"
	"github.com/jonboulle/clockwork"
	"github.com/piquette/finance-go"
)

// chartPayload builds a Yahoo v8 chart body with one bar per close; nil closes are null bars.
func chartPayload(start time.Time, closes []*float64) map[string]interface{} {
	timestamps := make([]int64, len(closes))
	for i := range closes {
		timestamps[i] = start.AddDate(0, 0, i).Unix()
	}

	quote := map[string]interface{}{
		"open":   closes,
		"high":   closes,
		"low":    closes,
		"close":  closes,
		"volume": make([]int64, len(closes)),
	}

	return map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []map[string]interface{}{
				{
					"meta":      map[string]interface{}{"currency": "USD", "symbol": "AAPL"},
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote":    []map[string]interface{}{quote},
						"adjclose": []map[string]interface{}{{"adjclose": closes}},
					},
				},
			},
			"error": nil,
		},
	}
}

func float(v float64) *float64 { return &v }

func useChartServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	prev := finance.GetBackend(finance.YFinBackend)
	finance.SetBackend(finance.YFinBackend, &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        srv.URL,
		HTTPClient: srv.Client(),
	})
	t.Cleanup(func() { finance.SetBackend(finance.YFinBackend, prev) })
}

func TestYahooHistory_DailyCloses(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	closes := make([]*float64, 0, 255)
	for i := 0; i < 255; i++ {
		switch i {
		case 10:
			closes = append(closes, nil)
		case 20:
			closes = append(closes, float(0))
		default:
			closes = append(closes, float(100+float64(i)))
		}
	}

	var path string
	var period1, period2 int64
	useChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		period1, _ = strconv.ParseInt(r.URL.Query().Get("period1"), 10, 64)
		period2, _ = strconv.ParseInt(r.URL.Query().Get("period2"), 10, 64)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chartPayload(now.AddDate(-1, 0, 0), closes))
	})

	got, err := NewYahooHistory(clockwork.NewFakeClockAt(now)).DailyCloses(context.Background(), "aapl")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasSuffix(path, "/AAPL"))
	assert.Equal(t, 253, len(got))
	assert.Equal(t, "100", got[0].String())
	assert.Equal(t, "354", got[len(got)-1].String())

	// The request reaches back far enough to hold a 252-day lookback.
	start := time.Unix(period1, 0)
	assert.Equal(t, true, !start.After(now.AddDate(0, -13, 0).Add(24*time.Hour)))
	assert.Equal(t, true, start.After(now.AddDate(0, -13, 0).Add(-48*time.Hour)))
	assert.Equal(t, true, period2 > period1)

	pct, ok := PercentChange(got, YearOffset)
	assert.Equal(t, true, ok)
	assert.Equal(t, true, pct > 0)
}

func TestYahooHistory_Cancelled(t *testing.T) {
	useChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chartPayload(time.Now(), []*float64{float(1), float(2)}))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewYahooHistory(nil).DailyCloses(ctx, "AAPL")

	assert.Equal(t, upstream.KindUnreachable, upstream.KindOf(err))
}

func TestYahooHistory_UnknownSymbol(t *testing.T) {
	useChartServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	_, err := NewYahooHistory(nil).DailyCloses(context.Background(), "ZZZZ")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, upstream.KindNotFound, upstream.KindOf(err))
}
