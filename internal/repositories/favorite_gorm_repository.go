package repositories

import (
	"errors"
	"fmt"

	"campustrade/internal/models"

	"gorm.io/gorm"
)

// GORMFavoriteRepository is a GORM implementation of FavoriteRepository.
type GORMFavoriteRepository struct {
	db *gorm.DB
}

// NewGORMFavoriteRepository creates a new instance of GORMFavoriteRepository.
func NewGORMFavoriteRepository(db *gorm.DB) *GORMFavoriteRepository {
	return &GORMFavoriteRepository{
		db: db,
	}
}

// Add records the favorite for (user, post).
func (r *GORMFavoriteRepository) Add(userID, postID string) error {
	exists, err := r.Exists(userID, postID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("post %s already favorited by user %s: %w", postID, userID, models.ErrConflict)
	}
	favorite := models.Favorite{UserID: userID, PostID: postID}
	if err := r.db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("post %s already favorited by user %s: %w", postID, userID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite for (user, post).
func (r *GORMFavoriteRepository) Remove(userID, postID string) error {
	res := r.db.Delete(&models.Favorite{}, "user_id = ? AND post_id = ?", userID, postID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite for post %s by user %s: %w", postID, userID, models.ErrNotFound)
	}
	return nil
}

// Exists reports whether the user has favorited the post.
func (r *GORMFavoriteRepository) Exists(userID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ListPostsForUser returns the user's favorited posts ordered by when
// they were favorited, newest first.
func (r *GORMFavoriteRepository) ListPostsForUser(userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Preload("Owner").
		Preload("Category").
		Preload("Images").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %s: %w", userID, err)
	}
	return posts, nil
}
