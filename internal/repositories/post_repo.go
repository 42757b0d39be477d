package repositories

import "campustrade/internal/models"

// PostFilter narrows and orders a post listing. Zero values mean
// "no filter"; SortBy is one of latest, price_asc, price_desc and
// defaults to latest.
type PostFilter struct {
	Type       string
	Keyword    string
	CategoryID string
	SortBy     string
	Skip       int
	Limit      int
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List(filter PostFilter) ([]models.Post, int64, error)
	Update(post *models.Post) error
	// Delete removes the post and everything hanging off it in one
	// store transaction: its transaction row, favorites and image rows
	// are deleted, message post references are nulled. Returns the
	// image URLs so the caller can clean up the blob store.
	Delete(id string) ([]string, error)
	AddImage(image *models.PostImage) error
}

// CategoryRepository defines the interface for the fixed category set.
type CategoryRepository interface {
	List() ([]models.Category, error)
	Seed(names []string) error
}
