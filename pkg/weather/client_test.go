package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/go-playground/assert/v2"
)

const geocodeJSON = `{"results":[{"name":"London","country":"United Kingdom","latitude":51.50853,"longitude":-0.12574}]}`

const forecastJSON = `{
  "current": {
    "time": "2026-10-14T09:00",
    "temperature_2m": 12.4,
    "apparent_temperature": 10.9,
    "relative_humidity_2m": 81,
    "wind_speed_10m": 14.2,
    "weather_code": 3
  }
}`

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(5*time.Second, "")
	c.geocodingURL = srv.URL
	c.forecastURL = srv.URL
	return c
}

func TestClient_GeocodeAndCurrent(t *testing.T) {
	var forecastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search":
			assert.Equal(t, "London", r.URL.Query().Get("name"))
			w.Write([]byte(geocodeJSON))
		case "/v1/forecast":
			forecastQuery = r.URL.RawQuery
			assert.Equal(t, "ukmo_seamless", r.URL.Query().Get("models"))
			w.Write([]byte(forecastJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)

	loc, err := c.Geocode(context.Background(), "London")
	assert.Equal(t, nil, err)
	assert.Equal(t, "London", loc.Name)
	assert.Equal(t, "United Kingdom", loc.Country)

	cur, err := c.Current(context.Background(), loc)
	assert.Equal(t, nil, err)
	assert.Equal(t, 12.4, cur.TemperatureC)
	assert.Equal(t, 10.9, cur.ApparentC)
	assert.Equal(t, float64(81), cur.HumidityPct)
	assert.Equal(t, 14.2, cur.WindKph)
	assert.Equal(t, 3, cur.Code)
	assert.Equal(t, 2026, cur.ObservedAt.Year())
	assert.NotEqual(t, "", forecastQuery)
}

func TestClient_GeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Geocode(context.Background(), "Atlantis")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, upstream.KindNotFound, upstream.KindOf(err))
}

func TestClient_ForecastError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":true,"reason":"Invalid model"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Current(context.Background(), Location{Latitude: 1, Longitude: 2})

	var upErr *upstream.Error
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, errorsAs(err, &upErr))
	assert.Equal(t, http.StatusBadRequest, upErr.Status)
	assert.Equal(t, upstream.KindUpstream, upErr.Kind)
}

func TestConditionLabel(t *testing.T) {
	assert.Equal(t, "Clear", ConditionLabel(0))
	assert.Equal(t, "Overcast", ConditionLabel(3))
	assert.Equal(t, "Rain", ConditionLabel(63))
	assert.Equal(t, "Thunderstorm", ConditionLabel(99))
	assert.Equal(t, "Variable", ConditionLabel(42))
	assert.Equal(t, "Variable", ConditionLabel(-1))
}
