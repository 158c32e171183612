package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"support-router/internal/domain"
)

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a Postgres-backed ArticleRepository over
// the support_articles table.
func NewArticleRepository(pool *pgxpool.Pool) domain.ArticleRepository {
	return &articleRepository{pool: pool}
}

// ListArticles returns the full corpus in ingestion order. Ingestion order
// is the retrieval tie-break, so the ORDER BY matters.
func (r *articleRepository) ListArticles(ctx context.Context) ([]domain.Article, error) {
	query := `
		SELECT article_id, title, body, tags
		FROM support_articles
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}
	return articles, nil
}

func (r *articleRepository) UpsertArticle(ctx context.Context, article domain.Article) error {
	query := `
		INSERT INTO support_articles (article_id, title, body, tags, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (article_id) DO UPDATE
		SET title = EXCLUDED.title, body = EXCLUDED.body, tags = EXCLUDED.tags, updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, article.ID, article.Title, article.Body, article.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert article %s: %w", article.ID, err)
	}
	return nil
}
