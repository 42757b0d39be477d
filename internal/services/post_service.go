package services

import (
	"fmt"
	"io"
	"log"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
	"campustrade/internal/storage"
)

// PostUpdate carries the mutable post fields; nil means "leave as is".
type PostUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	PriceMin    *float64
	CategoryID  *string
	PostType    *models.PostType
	Condition   *models.PostCondition
	Status      *models.PostStatus
}

// PostService handles business logic for listings and categories.
type PostService struct {
	postRepo     repositories.PostRepository
	categoryRepo repositories.CategoryRepository
	blobs        storage.Store
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, categoryRepo repositories.CategoryRepository, blobs storage.Store) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		blobs:        blobs,
	}
}

// CreatePost creates a listing owned by the given user.
func (s *PostService) CreatePost(post *models.Post, ownerID string) error {
	post.OwnerID = ownerID
	post.Status = models.StatusAvailable
	return s.postRepo.Create(post)
}

// GetPost retrieves one post with its relations.
func (s *PostService) GetPost(id string) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves posts matching the filter plus the total count.
func (s *PostService) ListPosts(filter repositories.PostFilter) ([]models.Post, int64, error) {
	return s.postRepo.List(filter)
}

// UpdatePost applies the given changes. Only the owner may mutate.
func (s *PostService) UpdatePost(postID, actorID string, update PostUpdate) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, fmt.Errorf("user %s does not own post %s: %w", actorID, postID, models.ErrForbidden)
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Description != nil {
		post.Description = *update.Description
	}
	if update.Price != nil {
		post.Price = *update.Price
	}
	if update.PriceMin != nil {
		post.PriceMin = update.PriceMin
	}
	if update.CategoryID != nil {
		post.CategoryID = *update.CategoryID
	}
	if update.PostType != nil {
		post.PostType = *update.PostType
	}
	if update.Condition != nil {
		post.Condition = *update.Condition
	}
	if update.Status != nil {
		post.Status = *update.Status
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post, everything hanging off it, and its
// image blobs. Blob removal is best-effort after the store commit.
func (s *PostService) DeletePost(postID, actorID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.OwnerID != actorID {
		return fmt.Errorf("user %s does not own post %s: %w", actorID, postID, models.ErrForbidden)
	}

	imageURLs, err := s.postRepo.Delete(postID)
	if err != nil {
		return err
	}
	for _, url := range imageURLs {
		if err := s.blobs.Remove(url); err != nil {
			log.Printf("Warning: failed to remove image blob %s for deleted post %s: %v", url, postID, err)
		}
	}
	return nil
}

// AttachImage stores an uploaded image blob and records it against the
// post. Only the owner may upload.
func (s *PostService) AttachImage(postID, actorID, filename string, file io.Reader) (*models.PostImage, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, fmt.Errorf("user %s does not own post %s: %w", actorID, postID, models.ErrForbidden)
	}

	url, err := s.blobs.Save("images", filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store post image: %w", err)
	}

	image := &models.PostImage{PostID: postID, ImageURL: url}
	if err := s.postRepo.AddImage(image); err != nil {
		if removeErr := s.blobs.Remove(url); removeErr != nil {
			log.Printf("Warning: failed to remove orphaned image blob %s: %v", url, removeErr)
		}
		return nil, err
	}
	return image, nil
}

// ListCategories returns the fixed category set.
func (s *PostService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}
