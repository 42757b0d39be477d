package handlers

import (
	"log"

	"campustrade/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles HTTP requests for the sale-confirmation
// handshake.
type TransactionHandler struct {
	transactionService *services.TransactionService
	validate           *validator.Validate
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		validate:           validator.New(),
	}
}

// RegisterProtectedRoutes registers the transaction routes; all of
// them require authentication.
func (h *TransactionHandler) RegisterProtectedRoutes(router fiber.Router) {
	txnRoutes := router.Group("/transactions")
	txnRoutes.Post("/", h.HandleCreateTransaction)
	txnRoutes.Get("/my-pending", h.HandleListPending)
	txnRoutes.Get("/:id", h.HandleGetTransaction)
	txnRoutes.Patch("/:id/confirm", h.HandleConfirm)
}

// CreateTransactionRequest represents the request body for opening the
// handshake.
type CreateTransactionRequest struct {
	PostID  string `json:"post_id" validate:"required"`
	BuyerID string `json:"buyer_id" validate:"required"`
}

// HandleCreateTransaction creates the transaction for a post and marks
// it sold; post owner only.
func (h *TransactionHandler) HandleCreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create transaction body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	txn, err := h.transactionService.CreateTransaction(req.PostID, currentUserID(c), req.BuyerID)
	if err != nil {
		log.Printf("Error creating transaction for post %s: %v", req.PostID, err)
		return respondError(c, err, "Could not create transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// HandleConfirm applies the caller's confirmation; participant only.
func (h *TransactionHandler) HandleConfirm(c *fiber.Ctx) error {
	txn, err := h.transactionService.Confirm(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error confirming transaction %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not confirm transaction")
	}
	return c.JSON(txn)
}

// HandleListPending returns the caller's uncompleted transactions,
// newest first.
func (h *TransactionHandler) HandleListPending(c *fiber.Ctx) error {
	txns, err := h.transactionService.ListPending(currentUserID(c))
	if err != nil {
		log.Printf("Error listing pending transactions: %v", err)
		return respondError(c, err, "Could not list pending transactions")
	}
	return c.JSON(txns)
}

// HandleGetTransaction returns one transaction; participant only.
func (h *TransactionHandler) HandleGetTransaction(c *fiber.Ctx) error {
	txn, err := h.transactionService.GetTransaction(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error loading transaction %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not load transaction")
	}
	return c.JSON(txn)
}
