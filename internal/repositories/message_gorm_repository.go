package repositories

import (
	"fmt"
	"sort"

	"campustrade/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create appends a new message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListConversation returns all messages about a post between the two
// users, in either direction, oldest first.
func (r *GORMMessageRepository) ListConversation(postID, userAID, userBID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Preload("Receiver").
		Where("post_id = ?", postID).
		Where(
			r.db.Where("sender_id = ? AND receiver_id = ?", userAID, userBID).
				Or("sender_id = ? AND receiver_id = ?", userBID, userAID),
		).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation for post %s: %w", postID, err)
	}
	return messages, nil
}

// conversationKey identifies a conversation: one post, one counterpart.
type conversationKey struct {
	postID      string
	otherUserID string
}

// Inbox derives the conversation list from the raw message log. All of
// the user's messages are read in one query (one consistent snapshot),
// then grouped by (post, counterpart) keeping the latest message per
// key. The grouping compares timestamps explicitly rather than relying
// on the read order.
func (r *GORMMessageRepository) Inbox(userID string) ([]models.InboxConversation, error) {
	var messages []models.Message
	err := r.db.
		Preload("Post").
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for inbox of %s: %w", userID, err)
	}

	latest := make(map[conversationKey]*models.Message)
	for i := range messages {
		msg := &messages[i]
		// A missing post, sender or receiver means the entity was
		// deleted; such messages never surface in the inbox.
		if msg.Post == nil || msg.Sender == nil || msg.Receiver == nil {
			continue
		}
		otherID := msg.SenderID
		if otherID == userID {
			otherID = msg.ReceiverID
		}
		key := conversationKey{postID: *msg.PostID, otherUserID: otherID}
		if current, ok := latest[key]; !ok || messageNewer(msg, current) {
			latest[key] = msg
		}
	}

	inbox := make([]models.InboxConversation, 0, len(latest))
	for _, msg := range latest {
		other := msg.Sender
		if msg.SenderID == userID {
			other = msg.Receiver
		}
		inbox = append(inbox, models.InboxConversation{
			Post:        msg.Post,
			OtherUser:   other,
			LastMessage: msg,
		})
	}

	sort.Slice(inbox, func(i, j int) bool {
		return messageNewer(inbox[i].LastMessage, inbox[j].LastMessage)
	})
	return inbox, nil
}

// messageNewer reports whether a was written after b, breaking
// timestamp ties by ID so the ordering is total.
func messageNewer(a, b *models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// MarkConversationRead bulk-updates the unread messages sent by
// otherUserID to currentUserID about the post. A second call finds
// nothing unread and reports zero.
func (r *GORMMessageRepository) MarkConversationRead(postID, currentUserID, otherUserID string) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("post_id = ?", postID).
		Where("sender_id = ?", otherUserID).
		Where("receiver_id = ?", currentUserID).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark conversation read for post %s: %w", postID, res.Error)
	}
	return res.RowsAffected, nil
}

// ContactedUsers lists every user who has a message exchange with the
// owner about the post, deduplicated. Used by the owner to pick a
// buyer when creating a transaction.
func (r *GORMMessageRepository) ContactedUsers(postID, ownerID string) ([]models.User, error) {
	var messages []models.Message
	err := r.db.
		Where("post_id = ?", postID).
		Where("sender_id = ? OR receiver_id = ?", ownerID, ownerID).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for post %s: %w", postID, err)
	}

	seen := make(map[string]bool)
	var userIDs []string
	for _, msg := range messages {
		for _, id := range []string{msg.SenderID, msg.ReceiverID} {
			if id != ownerID && !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}
	if len(userIDs) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load contacted users for post %s: %w", postID, err)
	}
	return users, nil
}
