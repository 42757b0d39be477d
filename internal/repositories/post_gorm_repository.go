package repositories

import (
	"errors"
	"fmt"

	"campustrade/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a new post in the database.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = models.StatusAvailable
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post with its owner, category and images.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Owner").
		Preload("Category").
		Preload("Images").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// List retrieves posts matching the filter plus the unpaginated total.
func (r *GORMPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filter.Type != "" {
		query = query.Where("post_type = ?", filter.Type)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	// Total before pagination so clients can page.
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var posts []models.Post
	err := query.
		Preload("Owner").
		Preload("Category").
		Preload("Images").
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// Update updates an existing post in the database.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Save(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s for update: %w", post.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes the post and its dependents in a single transaction.
// The store has no declarative cascade rules; every dependent row is
// handled here explicitly so a crash mid-way can never leave a
// half-deleted post behind.
func (r *GORMPostRepository) Delete(id string) ([]string, error) {
	var imageURLs []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post with ID %s: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to load post %s for deletion: %w", id, err)
		}

		var images []models.PostImage
		if err := tx.Find(&images, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to load images for post %s: %w", id, err)
		}
		for _, img := range images {
			imageURLs = append(imageURLs, img.ImageURL)
		}

		if err := tx.Delete(&models.Transaction{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete transaction for post %s: %w", id, err)
		}
		if err := tx.Delete(&models.Favorite{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete favorites for post %s: %w", id, err)
		}
		if err := tx.Delete(&models.PostImage{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete images for post %s: %w", id, err)
		}
		// Messages outlive the post; only the reference is cleared.
		if err := tx.Model(&models.Message{}).Where("post_id = ?", id).
			Update("post_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach messages from post %s: %w", id, err)
		}
		if err := tx.Delete(&models.Post{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete post %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageURLs, nil
}

// AddImage attaches an uploaded image record to a post.
func (r *GORMPostRepository) AddImage(image *models.PostImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to add post image: %w", err)
	}
	return nil
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// List returns all categories.
func (r *GORMCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Seed inserts the given category names if the table is empty.
func (r *GORMCategoryRepository) Seed(names []string) error {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		category := models.Category{ID: uuid.New().String(), Name: name}
		if err := r.db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}
	return nil
}
