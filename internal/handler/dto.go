package handler

import (
	"time"

	"github.com/Jamesrrobbins/market-news/internal/dashboard"
	"github.com/Jamesrrobbins/market-news/internal/model"
	"github.com/Jamesrrobbins/market-news/pkg/market"
	"github.com/Jamesrrobbins/market-news/pkg/news"
	"github.com/Jamesrrobbins/market-news/pkg/weather"
)

type ItemResponse struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
}

type NewsResponse struct {
	Items []ItemResponse `json:"items"`
	Mode  string         `json:"mode"`
	Count int            `json:"count"`
}

type WeatherResponse struct {
	Query        string  `json:"query"`
	Location     string  `json:"location"`
	Country      string  `json:"country"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TemperatureC float64 `json:"temperature_c"`
	ApparentC    float64 `json:"apparent_c"`
	WindKph      float64 `json:"wind_kph"`
	HumidityPct  float64 `json:"humidity_pct"`
	Condition    string  `json:"condition"`
	Source       string  `json:"source"`
	ObservedAt   string  `json:"observed_at,omitempty"`
	Available    bool    `json:"available"`
	Error        string  `json:"error,omitempty"`
	ErrorKind    string  `json:"error_kind,omitempty"`
}

type ChangeResponse struct {
	Window    string  `json:"window"`
	Offset    int     `json:"offset"`
	Percent   float64 `json:"percent"`
	Available bool    `json:"available"`
	Direction string  `json:"direction"`
	Color     string  `json:"color"`
}

type QuoteResponse struct {
	Symbol    string           `json:"symbol"`
	Price     float64          `json:"price"`
	PriceText string           `json:"price_text"`
	Changes   []ChangeResponse `json:"changes"`
	Direction string           `json:"direction"`
	Color     string           `json:"color"`
	News      []ItemResponse   `json:"news"`
	Available bool             `json:"available"`
	Error     string           `json:"error,omitempty"`
	ErrorKind string           `json:"error_kind,omitempty"`
}

type WatchlistResponse struct {
	Symbols []string `json:"symbols"`
}

type WatchlistRequest struct {
	Symbol string `json:"symbol"`
}

type SummaryItemRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

type SummaryRequest struct {
	Items   []SummaryItemRequest `json:"items"`
	Text    string               `json:"text"`
	Context string               `json:"context"`
	Style   string               `json:"style"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
	Context string `json:"context"`
	Style   string `json:"style"`
}

type SectionResponse struct {
	Title   string         `json:"title"`
	Items   []ItemResponse `json:"items"`
	Summary string         `json:"summary"`
}

type TickerCardResponse struct {
	Quote   QuoteResponse `json:"quote"`
	Summary string        `json:"summary,omitempty"`
}

type DashboardResponse struct {
	Location    string               `json:"location"`
	Weather     WeatherResponse      `json:"weather"`
	Local       SectionResponse      `json:"local"`
	Global      SectionResponse      `json:"global"`
	UK          SectionResponse      `json:"uk"`
	Watchlist   []TickerCardResponse `json:"watchlist"`
	GeneratedAt string               `json:"generated_at"`
}

type BriefingResponse struct {
	ID              int64    `json:"id"`
	Content         string   `json:"content"`
	MarketHeadlines []string `json:"market_headlines"`
	Tickers         []string `json:"tickers"`
	ModelUsed       string   `json:"model_used"`
	GeneratedAt     string   `json:"generated_at"`
}

type BriefingsResponse struct {
	Latest  *BriefingResponse  `json:"latest"`
	History []BriefingResponse `json:"history"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

func toItemResponses(items []news.Item) []ItemResponse {
	res := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		r := ItemResponse{Title: it.Title, Source: it.Source, URL: it.URL}
		if !it.PublishedAt.IsZero() {
			r.PublishedAt = it.PublishedAt.Format(time.RFC3339)
		}
		res = append(res, r)
	}
	return res
}

func toWeatherResponse(s weather.Snapshot) WeatherResponse {
	res := WeatherResponse{
		Query:        s.Query,
		Location:     s.Location.Name,
		Country:      s.Location.Country,
		Latitude:     s.Location.Latitude,
		Longitude:    s.Location.Longitude,
		TemperatureC: s.TemperatureC,
		ApparentC:    s.ApparentC,
		WindKph:      s.WindKph,
		HumidityPct:  s.HumidityPct,
		Condition:    s.Condition,
		Source:       s.Source,
		Available:    s.OK(),
		Error:        s.Error,
		ErrorKind:    string(s.ErrorKind),
	}
	if !s.ObservedAt.IsZero() {
		res.ObservedAt = s.ObservedAt.Format("2006-01-02T15:04")
	}
	return res
}

func toQuoteResponse(q market.Quote) QuoteResponse {
	changes := make([]ChangeResponse, 0, len(q.Changes))
	for _, c := range q.Changes {
		changes = append(changes, ChangeResponse{
			Window:    c.Window,
			Offset:    c.Offset,
			Percent:   c.Percent,
			Available: c.Available,
			Direction: string(c.Direction),
			Color:     c.Color,
		})
	}

	return QuoteResponse{
		Symbol:    q.Symbol,
		Price:     q.Price,
		PriceText: q.PriceText,
		Changes:   changes,
		Direction: string(q.Direction),
		Color:     q.Color,
		News:      toItemResponses(q.News),
		Available: q.OK(),
		Error:     q.Error,
		ErrorKind: string(q.ErrorKind),
	}
}

func toSectionResponse(s dashboard.Section) SectionResponse {
	return SectionResponse{Title: s.Title, Items: toItemResponses(s.Items), Summary: s.Summary}
}

func toDashboardResponse(d dashboard.Dashboard) DashboardResponse {
	cards := make([]TickerCardResponse, 0, len(d.Watchlist))
	for _, c := range d.Watchlist {
		cards = append(cards, TickerCardResponse{Quote: toQuoteResponse(c.Quote), Summary: c.Summary})
	}

	return DashboardResponse{
		Location:    d.Location,
		Weather:     toWeatherResponse(d.Weather),
		Local:       toSectionResponse(d.Local),
		Global:      toSectionResponse(d.Global),
		UK:          toSectionResponse(d.UK),
		Watchlist:   cards,
		GeneratedAt: d.GeneratedAt.Format(time.RFC3339),
	}
}

func toBriefingResponse(b model.Briefing) BriefingResponse {
	headlines := b.MarketHeadlines
	if headlines == nil {
		headlines = []string{}
	}
	tickers := b.Tickers
	if tickers == nil {
		tickers = []string{}
	}

	return BriefingResponse{
		ID:              b.ID,
		Content:         b.Content,
		MarketHeadlines: headlines,
		Tickers:         tickers,
		ModelUsed:       b.ModelUsed,
		GeneratedAt:     b.GeneratedAt.Format(time.RFC3339),
	}
}
