package handlers

import (
	"log"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
	"campustrade/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for listings and categories.
type PostHandler struct {
	postService *services.PostService
	validate    *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public listing routes.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/posts", h.HandleListPosts)
	router.Get("/posts/:id", h.HandleGetPost)
	router.Get("/categories", h.HandleListCategories)
}

// RegisterProtectedRoutes registers the owner-only mutation routes.
func (h *PostHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/posts", h.HandleCreatePost)
	router.Patch("/posts/:id", h.HandleUpdatePost)
	router.Delete("/posts/:id", h.HandleDeletePost)
	router.Post("/posts/:id/images", h.HandleUploadImage)
}

// CreatePostRequest represents the request body for creating a listing.
type CreatePostRequest struct {
	Title       string                `json:"title" validate:"required,min=1,max=255"`
	Description string                `json:"description" validate:"required"`
	Price       float64               `json:"price" validate:"gte=0"`
	PriceMin    *float64              `json:"price_min"`
	CategoryID  string                `json:"category_id" validate:"required"`
	PostType    models.PostType       `json:"post_type" validate:"required,oneof=sell buy free"`
	Condition   models.PostCondition  `json:"condition" validate:"omitempty,oneof=new like_new good fair"`
}

// HandleCreatePost creates a new listing owned by the caller.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		PriceMin:    req.PriceMin,
		CategoryID:  req.CategoryID,
		PostType:    req.PostType,
		Condition:   req.Condition,
	}
	if err := h.postService.CreatePost(post, currentUserID(c)); err != nil {
		log.Printf("Error creating post: %v", err)
		return respondError(c, err, "Could not create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleListPosts lists posts with filters, sorting and pagination.
func (h *PostHandler) HandleListPosts(c *fiber.Ctx) error {
	filter := repositories.PostFilter{
		Type:       c.Query("type"),
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("category_id"),
		SortBy:     c.Query("sort_by"),
		Skip:       c.QueryInt("skip", 0),
		Limit:      c.QueryInt("limit", 10),
	}

	posts, total, err := h.postService.ListPosts(filter)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return respondError(c, err, "Could not list posts")
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"total": total,
	})
}

// HandleGetPost returns one post.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.postService.GetPost(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not load post")
	}
	return c.JSON(post)
}

// UpdatePostRequest represents the request body for updating a listing.
// All fields are optional; absent fields stay unchanged.
type UpdatePostRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Price       *float64               `json:"price"`
	PriceMin    *float64               `json:"price_min"`
	CategoryID  *string                `json:"category_id"`
	PostType    *models.PostType       `json:"post_type"`
	Condition   *models.PostCondition  `json:"condition"`
	Status      *models.PostStatus     `json:"status"`
}

// HandleUpdatePost applies partial updates; owner only.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	post, err := h.postService.UpdatePost(c.Params("id"), currentUserID(c), services.PostUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		PriceMin:    req.PriceMin,
		CategoryID:  req.CategoryID,
		PostType:    req.PostType,
		Condition:   req.Condition,
		Status:      req.Status,
	})
	if err != nil {
		log.Printf("Error updating post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not update post")
	}
	return c.JSON(post)
}

// HandleDeletePost removes a listing; owner only.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	if err := h.postService.DeletePost(c.Params("id"), currentUserID(c)); err != nil {
		log.Printf("Error deleting post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not delete post")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadImage attaches an uploaded image to a listing; owner only.
func (h *PostHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' upload is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	image, err := h.postService.AttachImage(c.Params("id"), currentUserID(c), fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error uploading image for post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not upload image")
	}
	return c.Status(fiber.StatusCreated).JSON(image)
}

// HandleListCategories returns the fixed category set.
func (h *PostHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.postService.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, err, "Could not list categories")
	}
	return c.JSON(categories)
}
