package watchlist

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DefaultSymbols seed a new watchlist and replace one that cannot be read.
var DefaultSymbols = []string{"AAPL", "NVDA", "TSLA"}

func defaults() []string {
	return slices.Clone(DefaultSymbols)
}

// Normalize trims and uppercases a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Store persists the full ordered list. Load falls back to DefaultSymbols
// instead of failing.
type Store interface {
	Load(ctx context.Context) []string
	Save(ctx context.Context, symbols []string) error
}

// Watchlist is an ordered set of ticker symbols backed by a Store.
type Watchlist struct {
	mu      sync.Mutex
	store   Store
	symbols []string
}

func New(ctx context.Context, store Store) *Watchlist {
	return &Watchlist{store: store, symbols: dedupe(store.Load(ctx))}
}

func (w *Watchlist) Symbols() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.symbols)
}

// Add appends symbol unless it is empty or already present. It reports whether
// the list changed.
func (w *Watchlist) Add(ctx context.Context, symbol string) (bool, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return false, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if slices.Contains(w.symbols, symbol) {
		return false, nil
	}
	return true, w.replace(ctx, append(slices.Clone(w.symbols), symbol))
}

func (w *Watchlist) Remove(ctx context.Context, symbol string) (bool, error) {
	symbol = Normalize(symbol)

	w.mu.Lock()
	defer w.mu.Unlock()

	i := slices.Index(w.symbols, symbol)
	if i < 0 {
		return false, nil
	}
	return true, w.replace(ctx, slices.Delete(slices.Clone(w.symbols), i, i+1))
}

func (w *Watchlist) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.replace(ctx, []string{})
}

// replace saves next and only adopts it once the store accepted it.
func (w *Watchlist) replace(ctx context.Context, next []string) error {
	if err := w.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save watchlist: %w", err)
	}
	w.symbols = next
	return nil
}

func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = Normalize(s)
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
