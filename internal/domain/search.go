package domain

// Search limits mirrored from the backend
const (
	DefaultTopK = 3
	MaxTopK     = 20
)

// CodeSearchResult is a snippet scored by the backend
type CodeSearchResult struct {
	Code       string  `json:"code"`
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
}

// SearchQuery represents a code search request
type SearchQuery struct {
	Query    string `json:"query" validate:"required,max=2000"`
	Language string `json:"language" validate:"required"`
	TopK     int    `json:"top_k" validate:"min=1,max=20"`
}

// LanguageList is the backend's supported language response
type LanguageList struct {
	Languages []string `json:"languages"`
}
