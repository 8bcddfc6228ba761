package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Jamesrrobbins/market-news/internal/model"
	"github.com/lib/pq"
)

type BriefingRepository struct {
	db *sql.DB
}

func NewBriefingRepository(db *sql.DB) *BriefingRepository {
	return &BriefingRepository{db: db}
}

func (r *BriefingRepository) SaveBriefing(ctx context.Context, b *model.Briefing) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO briefings(content, market_headlines, tickers, model_used, generated_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, b.Content, pq.Array(b.MarketHeadlines), pq.Array(b.Tickers), b.ModelUsed, b.GeneratedAt).Scan(&b.ID)
}

// GetLatestBriefing returns nil, nil when no briefing has been saved yet.
func (r *BriefingRepository) GetLatestBriefing(ctx context.Context) (*model.Briefing, error) {
	var b model.Briefing
	err := r.db.QueryRowContext(ctx, `
		SELECT id, content, market_headlines, tickers, model_used, generated_at
		FROM briefings
		ORDER BY generated_at DESC, id DESC
		LIMIT 1
	`).Scan(&b.ID, &b.Content, pq.Array(&b.MarketHeadlines), pq.Array(&b.Tickers), &b.ModelUsed, &b.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BriefingRepository) GetBriefings(ctx context.Context, limit, offset int) ([]model.Briefing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, market_headlines, tickers, model_used, generated_at
		FROM briefings
		ORDER BY generated_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var briefings []model.Briefing
	for rows.Next() {
		var b model.Briefing
		err := rows.Scan(&b.ID, &b.Content, pq.Array(&b.MarketHeadlines), pq.Array(&b.Tickers), &b.ModelUsed, &b.GeneratedAt)
		if err != nil {
			return nil, err
		}
		briefings = append(briefings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return briefings, nil
}

func (r *BriefingRepository) GetBriefingTotal(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM briefings`).Scan(&total)
	return total, err
}
