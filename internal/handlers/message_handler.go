package handlers

import (
	"log"

	"campustrade/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for messaging and the inbox.
type MessageHandler struct {
	messageService *services.MessageService
	validate       *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validate:       validator.New(),
	}
}

// RegisterProtectedRoutes registers the messaging routes; all of them
// require authentication.
func (h *MessageHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/messages", h.HandleSendMessage)
	router.Get("/conversations", h.HandleListConversation)
	router.Patch("/conversations/mark-read", h.HandleMarkConversationRead)
	router.Get("/users/me/inbox", h.HandleGetInbox)
	router.Get("/posts/:id/contacted-users", h.HandleContactedUsers)
}

// SendMessageRequest represents the request body for sending a message.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	PostID     string `json:"post_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// HandleSendMessage appends a message to a conversation.
func (h *MessageHandler) HandleSendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing send message body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	message, err := h.messageService.SendMessage(currentUserID(c), req.ReceiverID, req.PostID, req.Content)
	if err != nil {
		log.Printf("Error sending message: %v", err)
		return respondError(c, err, "Could not send message")
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleListConversation returns the thread between the caller and a
// counterpart about one post, oldest first.
func (h *MessageHandler) HandleListConversation(c *fiber.Ctx) error {
	postID := c.Query("post_id")
	otherUserID := c.Query("other_user_id")
	if postID == "" || otherUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "post_id and other_user_id query parameters are required",
		})
	}

	messages, err := h.messageService.ListConversation(postID, currentUserID(c), otherUserID)
	if err != nil {
		log.Printf("Error listing conversation for post %s: %v", postID, err)
		return respondError(c, err, "Could not list conversation")
	}
	return c.JSON(messages)
}

// HandleMarkConversationRead marks the counterpart's messages in a
// conversation as read and reports the count flipped.
func (h *MessageHandler) HandleMarkConversationRead(c *fiber.Ctx) error {
	postID := c.Query("post_id")
	otherUserID := c.Query("other_user_id")
	if postID == "" || otherUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "post_id and other_user_id query parameters are required",
		})
	}

	updated, err := h.messageService.MarkConversationRead(postID, currentUserID(c), otherUserID)
	if err != nil {
		log.Printf("Error marking conversation read for post %s: %v", postID, err)
		return respondError(c, err, "Could not mark conversation read")
	}
	return c.JSON(fiber.Map{"updated_count": updated})
}

// HandleGetInbox returns the caller's conversation list, most recent
// conversation first.
func (h *MessageHandler) HandleGetInbox(c *fiber.Ctx) error {
	inbox, err := h.messageService.GetInbox(currentUserID(c))
	if err != nil {
		log.Printf("Error loading inbox: %v", err)
		return respondError(c, err, "Could not load inbox")
	}
	return c.JSON(inbox)
}

// HandleContactedUsers lists everyone who messaged the caller about
// their post; owner only.
func (h *MessageHandler) HandleContactedUsers(c *fiber.Ctx) error {
	users, err := h.messageService.ContactedUsers(c.Params("id"), currentUserID(c))
	if err != nil {
		log.Printf("Error listing contacted users for post %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not list contacted users")
	}
	return c.JSON(users)
}
