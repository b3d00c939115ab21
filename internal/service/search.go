package service

import (
	"context"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
)

// SearchService exposes the backend's code search
type SearchService struct {
	client *backend.Client
}

// NewSearchService creates a new search service
func NewSearchService(client *backend.Client) *SearchService {
	return &SearchService{client: client}
}

// Search runs a code search query
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) ([]domain.CodeSearchResult, error) {
	if query.TopK == 0 {
		query.TopK = domain.DefaultTopK
	}
	if err := validate.Struct(query); err != nil {
		return nil, err
	}

	var results []domain.CodeSearchResult
	if err := s.client.Post(ctx, "/search", query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Languages returns the programming languages the backend can search
func (s *SearchService) Languages(ctx context.Context) ([]string, error) {
	var list domain.LanguageList
	if err := s.client.Get(ctx, "/search/languages", &list); err != nil {
		return nil, err
	}
	return list.Languages, nil
}
