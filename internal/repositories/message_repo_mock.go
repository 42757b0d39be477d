package repositories

import (
	"sort"
	"sync"
	"time"

	"campustrade/internal/models"

	"github.com/google/uuid"
)

// MockMessageRepository is an in-memory implementation of
// MessageRepository. Messages are stored with whatever Post, Sender
// and Receiver pointers they were created with; a nil pointer stands
// for a deleted entity, matching how the GORM implementation's
// preloads come back.
type MockMessageRepository struct {
	messages []models.Message
	mu       sync.RWMutex
}

// NewMockMessageRepository creates a new instance of MockMessageRepository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

// Create appends a new message.
func (r *MockMessageRepository) Create(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *message)
	return nil
}

// ListConversation returns the two-party thread for a post, oldest first.
func (r *MockMessageRepository) ListConversation(postID, userAID, userBID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var thread []models.Message
	for _, msg := range r.messages {
		if msg.PostID == nil || *msg.PostID != postID {
			continue
		}
		betweenAB := msg.SenderID == userAID && msg.ReceiverID == userBID
		betweenBA := msg.SenderID == userBID && msg.ReceiverID == userAID
		if betweenAB || betweenBA {
			thread = append(thread, msg)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		return messageNewer(&thread[j], &thread[i])
	})
	return thread, nil
}

// Inbox derives the latest-per-conversation view, newest first.
func (r *MockMessageRepository) Inbox(userID string) ([]models.InboxConversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := make(map[conversationKey]*models.Message)
	for i := range r.messages {
		msg := &r.messages[i]
		if msg.SenderID != userID && msg.ReceiverID != userID {
			continue
		}
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

// MarkConversationRead flips unread messages from otherUserID to
// currentUserID about the post.
func (r *MockMessageRepository) MarkConversationRead(postID, currentUserID, otherUserID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for i := range r.messages {
		msg := &r.messages[i]
		if msg.PostID == nil || *msg.PostID != postID {
			continue
		}
		if msg.SenderID == otherUserID && msg.ReceiverID == currentUserID && !msg.IsRead {
			msg.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// ContactedUsers returns the deduplicated counterparts of the owner's
// message exchanges about the post.
func (r *MockMessageRepository) ContactedUsers(postID, ownerID string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	users := []models.User{}
	for _, msg := range r.messages {
		if msg.PostID == nil || *msg.PostID != postID {
			continue
		}
		if msg.SenderID != ownerID && msg.ReceiverID != ownerID {
			continue
		}
		other := msg.Sender
		if msg.SenderID == ownerID {
			other = msg.Receiver
		}
		if other == nil || seen[other.ID] {
			continue
		}
		seen[other.ID] = true
		users = append(users, *other)
	}
	return users, nil
}
