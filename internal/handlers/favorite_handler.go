package handlers

import (
	"log"

	"campustrade/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for favorite membership.
type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// RegisterProtectedRoutes registers the favorite routes; all of them
// require authentication.
func (h *FavoriteHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/posts/:id/favorite", h.HandleAddFavorite)
	router.Delete("/posts/:id/favorite", h.HandleRemoveFavorite)
	router.Get("/posts/:id/favorite", h.HandleCheckFavorite)
	router.Get("/users/me/favorites", h.HandleListFavorites)
}

// HandleAddFavorite favorites a post for the caller.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	if err := h.favoriteService.AddFavorite(currentUserID(c), c.Params("id")); err != nil {
		log.Printf("Error adding favorite for post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not favorite post")
	}
	return c.SendStatus(fiber.StatusCreated)
}

// HandleRemoveFavorite unfavorites a post for the caller.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	if err := h.favoriteService.RemoveFavorite(currentUserID(c), c.Params("id")); err != nil {
		log.Printf("Error removing favorite for post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not unfavorite post")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCheckFavorite reports whether the caller has favorited a post.
func (h *FavoriteHandler) HandleCheckFavorite(c *fiber.Ctx) error {
	favorited, err := h.favoriteService.IsFavorited(currentUserID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error checking favorite for post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not check favorite")
	}
	return c.JSON(fiber.Map{"is_favorited": favorited})
}

// HandleListFavorites lists the caller's favorited posts.
func (h *FavoriteHandler) HandleListFavorites(c *fiber.Ctx) error {
	posts, err := h.favoriteService.ListFavorites(currentUserID(c))
	if err != nil {
		log.Printf("Error listing favorites: %v", err)
		return respondError(c, err, "Could not list favorites")
	}
	return c.JSON(posts)
}
