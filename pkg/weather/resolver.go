package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/observability"
	"github.com/Jamesrrobbins/market-news/pkg/upstream"
)

type Snapshot struct {
	Query        string
	Location     Location
	TemperatureC float64
	ApparentC    float64
	WindKph      float64
	HumidityPct  float64
	Condition    string
	Source       string
	ObservedAt   time.Time

	// Error is set instead of the readings when either lookup fails.
	Error     string
	ErrorKind upstream.Kind
}

func (s Snapshot) OK() bool {
	return s.Error == ""
}

type Provider interface {
	Geocode(ctx context.Context, name string) (Location, error)
	Current(ctx context.Context, loc Location) (Conditions, error)
	Name() string
	Model() string
}

type Resolver struct {
	provider Provider
	metrics  *observability.Metrics
}

func NewResolver(provider Provider, metrics *observability.Metrics) *Resolver {
	return &Resolver{provider: provider, metrics: metrics}
}

// Resolve never fails: errors come back inside the snapshot.
func (r *Resolver) Resolve(ctx context.Context, query string) Snapshot {
	query = strings.TrimSpace(query)
	snap := Snapshot{Query: query, Source: r.sourceLabel()}

	if query == "" {
		snap.Error = ErrLocationNotFound.Error()
		snap.ErrorKind = upstream.KindNotFound
		return snap
	}

	start := time.Now()
	loc, err := r.provider.Geocode(ctx, query)
	r.metrics.ObserveUpstream(r.provider.Name(), err, time.Since(start))
	if err != nil {
		return r.fail(snap, err)
	}
	snap.Location = loc

	start = time.Now()
	cur, err := r.provider.Current(ctx, loc)
	r.metrics.ObserveUpstream(r.provider.Name(), err, time.Since(start))
	if err != nil {
		return r.fail(snap, err)
	}

	snap.TemperatureC = cur.TemperatureC
	snap.ApparentC = cur.ApparentC
	snap.WindKph = cur.WindKph
	snap.HumidityPct = cur.HumidityPct
	snap.Condition = ConditionLabel(cur.Code)
	snap.ObservedAt = cur.ObservedAt

	return snap
}

func (r *Resolver) fail(snap Snapshot, err error) Snapshot {
	snap.ErrorKind = upstream.KindOf(err)
	if errors.Is(err, ErrLocationNotFound) {
		snap.Error = ErrLocationNotFound.Error()
	} else {
		snap.Error = err.Error()
	}

	slog.Warn("weather lookup failed", "location", snap.Query, "kind", snap.ErrorKind, "error", err)
	return snap
}

func (r *Resolver) sourceLabel() string {
	return fmt.Sprintf("%s (%s)", r.provider.Name(), r.provider.Model())
}
