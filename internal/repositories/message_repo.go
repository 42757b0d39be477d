package repositories

import "campustrade/internal/models"

// MessageRepository defines the interface for message data access and
// the derived inbox view.
type MessageRepository interface {
	Create(message *models.Message) error
	// ListConversation returns the raw two-party thread for a post,
	// oldest first.
	ListConversation(postID, userAID, userBID string) ([]models.Message, error)
	// Inbox returns one entry per (post, counterpart) pair the user has
	// messages with, each carrying that pair's latest message, ordered
	// most-recent-first. Messages whose post, sender or receiver no
	// longer exists are skipped.
	Inbox(userID string) ([]models.InboxConversation, error)
	// MarkConversationRead flips is_read on every unread message in the
	// conversation that was sent by otherUserID to currentUserID.
	// Returns the number of rows changed; idempotent.
	MarkConversationRead(postID, currentUserID, otherUserID string) (int64, error)
	// ContactedUsers returns, deduplicated, every user who exchanged
	// messages with ownerID about the post.
	ContactedUsers(postID, ownerID string) ([]models.User, error)
}
