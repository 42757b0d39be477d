package repositories

import "campustrade/internal/models"

// FavoriteRepository defines the interface for favorite membership.
type FavoriteRepository interface {
	// Add records the favorite. Returns ErrConflict if it already exists.
	Add(userID, postID string) error
	// Remove deletes the favorite. Returns ErrNotFound if absent.
	Remove(userID, postID string) error
	Exists(userID, postID string) (bool, error)
	// ListPostsForUser returns the user's favorited posts, most
	// recently favorited first.
	ListPostsForUser(userID string) ([]models.Post, error)
}
