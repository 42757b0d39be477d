package services

import (
	"fmt"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
)

// MessageService handles conversations and the derived inbox view.
type MessageService struct {
	messageRepo repositories.MessageRepository
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// SendMessage appends a message about a post. Self-messaging is
// rejected, and both the receiver and the post must exist.
func (s *MessageService) SendMessage(senderID, receiverID, postID, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot send a message to yourself: %w", models.ErrInvalidArgument)
	}
	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		PostID:     &post.ID,
		Content:    content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListConversation returns the raw thread between the current user and
// a counterpart about one post, oldest first.
func (s *MessageService) ListConversation(postID, currentUserID, otherUserID string) ([]models.Message, error) {
	return s.messageRepo.ListConversation(postID, currentUserID, otherUserID)
}

// GetInbox returns the user's conversation list: one entry per
// (post, counterpart) pair carrying that pair's latest message,
// most recent conversation first.
func (s *MessageService) GetInbox(userID string) ([]models.InboxConversation, error) {
	return s.messageRepo.Inbox(userID)
}

// MarkConversationRead marks the counterpart's unread messages in a
// conversation as read and returns how many were flipped.
func (s *MessageService) MarkConversationRead(postID, currentUserID, otherUserID string) (int64, error) {
	return s.messageRepo.MarkConversationRead(postID, currentUserID, otherUserID)
}

// ContactedUsers lists everyone who messaged with the post's owner
// about the post. Owner-only: it exists so the seller can pick a buyer.
func (s *MessageService) ContactedUsers(postID, actorID string) ([]models.User, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, fmt.Errorf("user %s does not own post %s: %w", actorID, postID, models.ErrForbidden)
	}
	return s.messageRepo.ContactedUsers(postID, actorID)
}
