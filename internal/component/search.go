package component

import (
	"context"
	"strings"

	"github.com/Rrens/code-search-web/internal/domain"
)

// Search is the state behind the ad-hoc code search page
type Search struct {
	Notices

	Query     string
	Language  string
	TopK      int
	Languages []string
	Results   []domain.CodeSearchResult
	// Searched is set once a query reached the backend
	Searched bool

	api SearchAPI
}

// NewSearch creates an empty search page
func NewSearch(api SearchAPI) *Search {
	return &Search{api: api, TopK: domain.DefaultTopK}
}

// LoadLanguages fills the language selection
func (s *Search) LoadLanguages(ctx context.Context) {
	languages, err := s.api.Languages(ctx)
	if err != nil {
		s.fail("Could not load languages", err)
	}
	s.Languages = languages
	if s.Language == "" {
		s.Language = domain.DefaultLanguage
		if len(languages) > 0 {
			s.Language = languages[0]
		}
	}
}

// Run executes the query. A blank query is ignored.
func (s *Search) Run(ctx context.Context) {
	query := strings.TrimSpace(s.Query)
	if query == "" {
		return
	}

	results, err := s.api.Search(ctx, domain.SearchQuery{
		Query:    query,
		Language: s.Language,
		TopK:     s.TopK,
	})
	if err != nil {
		s.fail("Search failed", err)
		return
	}

	s.Results = results
	s.Searched = true
}
