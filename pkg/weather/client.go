package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

const (
	providerName      = "Open-Meteo"
	geocodingBaseURL  = "https://geocoding-api.open-meteo.com"
	forecastBaseURL   = "https://api.open-meteo.com"
	DefaultModel      = "ukmo_seamless"
	currentParameters = "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code"
)

var ErrLocationNotFound = errors.New("location not found")

type Location struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

type Conditions struct {
	TemperatureC float64
	ApparentC    float64
	HumidityPct  float64
	WindKph      float64
	Code         int
	ObservedAt   time.Time
}

// Client talks to the keyless Open-Meteo geocoding and forecast APIs.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	model        string
}

func NewClient(timeout time.Duration, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		geocodingURL: geocodingBaseURL,
		forecastURL:  forecastBaseURL,
		model:        model,
	}
}

func (c *Client) Name() string {
	return providerName
}

func (c *Client) Model() string {
	return c.model
}

// Geocode resolves a free-text place name to the first matching result.
func (c *Client) Geocode(ctx context.Context, name string) (Location, error) {
	params := url.Values{
		"name":     {name},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	var raw geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"/v1/search?"+params.Encode(), &raw); err != nil {
		return Location{}, fmt.Errorf("geocode %q: %w", name, err)
	}

	if len(raw.Results) == 0 {
		return Location{}, upstream.New(providerName, upstream.KindNotFound, ErrLocationNotFound)
	}

	r := raw.Results[0]
	return Location{Name: r.Name, Country: r.Country, Latitude: r.Latitude, Longitude: r.Longitude}, nil
}

// Current fetches current conditions for loc from the configured forecast model.
func (c *Client) Current(ctx context.Context, loc Location) (Conditions, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(loc.Latitude, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(loc.Longitude, 'f', 4, 64)},
		"current":         {currentParameters},
		"models":          {c.model},
		"wind_speed_unit": {"kmh"},
		"timezone":        {"auto"},
	}

	var raw forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"/v1/forecast?"+params.Encode(), &raw); err != nil {
		return Conditions{}, fmt.Errorf("current conditions: %w", err)
	}

	observedAt, err := time.Parse("2006-01-02T15:04", raw.Current.Time)
	if err != nil {
		observedAt = time.Time{}
	}

	return Conditions{
		TemperatureC: raw.Current.Temperature,
		ApparentC:    raw.Current.Apparent,
		HumidityPct:  raw.Current.Humidity,
		WindKph:      raw.Current.WindSpeed,
		Code:         raw.Current.WeatherCode,
		ObservedAt:   observedAt,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return upstream.Transport(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return upstream.FromStatus(providerName, resp.StatusCode, apiErrorReason(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstream.Parse(providerName, err)
	}
	return nil
}

func apiErrorReason(body []byte) string {
	var e struct {
		Reason string `json:"reason"`
	}
	if json.Unmarshal(body, &e) == nil && e.Reason != "" {
		return e.Reason
	}
	return string(body)
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature_2m"`
		Apparent    float64 `json:"apparent_temperature"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}
