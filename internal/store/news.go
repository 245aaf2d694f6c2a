package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.NewsRepository = (*NewsRepo)(nil)

// NewsRepo persists headlines, deduplicated by URL at the schema level.
type NewsRepo struct {
	db *pgxpool.Pool
}

func NewNewsRepo(db *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{db: db}
}

// SaveBatch inserts articles, silently skipping URLs already stored.
func (r *NewsRepo) SaveBatch(ctx context.Context, articles []*contracts.NewsArticle) error {
	if len(articles) == 0 {
		return nil
	}

	query := `
		INSERT INTO news_articles (ticker, title, url, source, published_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (url) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(query, a.Ticker, a.Title, a.URL, a.Source, a.PublishedAt)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range articles {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert news: %w", err)
		}
	}
	return nil
}

// GetByTickers returns the latest headlines for the tickers plus general
// market news (empty ticker), newest first.
func (r *NewsRepo) GetByTickers(ctx context.Context, tickers []string, limit int) ([]*contracts.NewsArticle, error) {
	query := `
		SELECT id, ticker, title, url, source, published_at
		FROM news_articles
		WHERE ticker = ANY($1) OR ticker = ''
		ORDER BY published_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, tickers, limit)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	var articles []*contracts.NewsArticle
	for rows.Next() {
		var a contracts.NewsArticle
		if err := rows.Scan(&a.ID, &a.Ticker, &a.Title, &a.URL, &a.Source, &a.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}
