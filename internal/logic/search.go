package logic

import (
	"context"
	"fmt"

	"github.com/fbsts/stats-api/internal/models"
)

// SearchService answers name lookups across teams and players.
type SearchService interface {
	Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error)
}

type searchService struct {
	pg PgPool
}

func NewSearchService(pg PgPool) SearchService {
	return &searchService{pg: pg}
}

func (s *searchService) Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: missing q", ErrBadRequest)
	}
	if limit <= 0 {
		limit = 10
	}

	// Accent-insensitive comparison on both sides: the query is slugified in
	// Go, the stored name in SQL.
	nameSlug := fmt.Sprintf(slugSQL, "name")
	rows, err := s.pg.Query(ctx, fmt.Sprintf(`
		SELECT kind, name FROM (
			SELECT 'team' AS kind, name, %s AS slug FROM teams
			UNION ALL
			SELECT 'player' AS kind, name, %s AS slug FROM players
		) entities
		WHERE slug LIKE '%%' || $1 || '%%'
		ORDER BY kind DESC, name
		LIMIT %d
	`, nameSlug, nameSlug, limit), Slugify(q))
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	results := make([]models.SearchResult, 0, limit)
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.Type, &r.Name); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		r.Slug = Slugify(r.Name)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search iteration: %w", err)
	}
	return results, nil
}
