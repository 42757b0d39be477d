package services

import (
	"campustrade/internal/models"
	"campustrade/internal/repositories"
)

// FavoriteService handles business logic for favorite membership.
type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	postRepo     repositories.PostRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, postRepo repositories.PostRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		postRepo:     postRepo,
	}
}

// AddFavorite records the favorite after checking the post exists.
func (s *FavoriteService) AddFavorite(userID, postID string) error {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(userID, postID)
}

// RemoveFavorite deletes the favorite.
func (s *FavoriteService) RemoveFavorite(userID, postID string) error {
	return s.favoriteRepo.Remove(userID, postID)
}

// IsFavorited reports membership.
func (s *FavoriteService) IsFavorited(userID, postID string) (bool, error) {
	return s.favoriteRepo.Exists(userID, postID)
}

// ListFavorites returns the user's favorited posts, most recently
// favorited first.
func (s *FavoriteService) ListFavorites(userID string) ([]models.Post, error) {
	return s.favoriteRepo.ListPostsForUser(userID)
}
