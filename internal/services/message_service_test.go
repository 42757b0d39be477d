package services_test

import (
	"fmt"
	"testing"
	"time"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
	"campustrade/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestMessageService_SendMessage(t *testing.T) {
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	messageRepo := repositories.NewMockMessageRepository()
	service := services.NewMessageService(messageRepo, mockPostRepo, mockUserRepo)

	post := &models.Post{ID: "post-1", OwnerID: "user-a"}
	receiver := &models.User{ID: "user-a"}
	mockPostRepo.On("GetByID", "post-1").Return(post, nil)
	mockUserRepo.On("GetByID", "user-a").Return(receiver, nil)

	msg, err := service.SendMessage("user-b", "user-a", "post-1", "is this still available?")
	assert.NoError(t, err)
	assert.Equal(t, "user-b", msg.SenderID)
	assert.Equal(t, "user-a", msg.ReceiverID)
	assert.NotNil(t, msg.PostID)
	assert.Equal(t, "post-1", *msg.PostID)
	assert.False(t, msg.IsRead)
}

func TestMessageService_SendMessage_Preconditions(t *testing.T) {
	t.Run("self-messaging", func(t *testing.T) {
		service := services.NewMessageService(repositories.NewMockMessageRepository(), new(MockPostRepository), new(MockUserRepository))
		_, err := service.SendMessage("user-a", "user-a", "post-1", "hello me")
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("receiver missing", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost: %w", models.ErrNotFound))
		service := services.NewMessageService(repositories.NewMockMessageRepository(), new(MockPostRepository), mockUserRepo)
		_, err := service.SendMessage("user-a", "ghost", "post-1", "hello")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("post missing", func(t *testing.T) {
		mockPostRepo := new(MockPostRepository)
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByID", "user-b").Return(&models.User{ID: "user-b"}, nil)
		mockPostRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("post with ID ghost: %w", models.ErrNotFound))
		service := services.NewMessageService(repositories.NewMockMessageRepository(), mockPostRepo, mockUserRepo)
		_, err := service.SendMessage("user-a", "user-b", "ghost", "hello")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

// seedMessage builds a message with resolved relations, the shape the
// repository's preloads produce.
func seedMessage(id string, post *models.Post, sender, receiver *models.User, at time.Time) models.Message {
	var postID *string
	if post != nil {
		postID = &post.ID
	}
	return models.Message{
		ID:         id,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		PostID:     postID,
		Content:    "msg " + id,
		CreatedAt:  at,
		Post:       post,
		Sender:     sender,
		Receiver:   receiver,
	}
}

func TestMessageService_GetInbox(t *testing.T) {
	messageRepo := repositories.NewMockMessageRepository()
	service := services.NewMessageService(messageRepo, new(MockPostRepository), new(MockUserRepository))

	userA := &models.User{ID: "user-a", Username: "A"}
	userB := &models.User{ID: "user-b", Username: "B"}
	userC := &models.User{ID: "user-c", Username: "C"}
	post1 := &models.Post{ID: "post-1", OwnerID: "user-a"}
	post2 := &models.Post{ID: "post-2", OwnerID: "user-c"}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []models.Message{
		seedMessage("m1", post1, userB, userA, base.Add(1*time.Minute)),
		seedMessage("m2", post2, userA, userC, base.Add(2*time.Minute)),
		seedMessage("m3", post1, userA, userB, base.Add(3*time.Minute)),
	}
	for i := range msgs {
		assert.NoError(t, messageRepo.Create(&msgs[i]))
	}

	inbox, err := service.GetInbox("user-a")
	assert.NoError(t, err)
	assert.Len(t, inbox, 2)

	// Newest conversation first: (post-1, B) at t=3, then (post-2, C) at t=2.
	assert.Equal(t, "post-1", inbox[0].Post.ID)
	assert.Equal(t, "user-b", inbox[0].OtherUser.ID)
	assert.Equal(t, "m3", inbox[0].LastMessage.ID)
	assert.Equal(t, "post-2", inbox[1].Post.ID)
	assert.Equal(t, "user-c", inbox[1].OtherUser.ID)
	assert.Equal(t, "m2", inbox[1].LastMessage.ID)

	// No duplicate (post, counterpart) keys.
	seen := make(map[string]bool)
	for _, entry := range inbox {
		key := entry.Post.ID + "/" + entry.OtherUser.ID
		assert.False(t, seen[key], "duplicate conversation key %s", key)
		seen[key] = true
	}
}

func TestMessageService_GetInbox_SkipsDeletedEntities(t *testing.T) {
	messageRepo := repositories.NewMockMessageRepository()
	service := services.NewMessageService(messageRepo, new(MockPostRepository), new(MockUserRepository))

	userA := &models.User{ID: "user-a"}
	userB := &models.User{ID: "user-b"}
	post1 := &models.Post{ID: "post-1"}

	base := time.Now()
	live := seedMessage("m1", post1, userB, userA, base)
	assert.NoError(t, messageRepo.Create(&live))

	// A message whose post was deleted: reference nulled, never shown.
	orphan := seedMessage("m2", nil, userB, userA, base.Add(time.Minute))
	assert.NoError(t, messageRepo.Create(&orphan))

	// A message whose sender no longer resolves.
	ghost := seedMessage("m3", post1, userB, userA, base.Add(2*time.Minute))
	ghost.Sender = nil
	assert.NoError(t, messageRepo.Create(&ghost))

	inbox, err := service.GetInbox("user-a")
	assert.NoError(t, err)
	assert.Len(t, inbox, 1)
	assert.Equal(t, "m1", inbox[0].LastMessage.ID)
}

func TestMessageService_MarkConversationRead(t *testing.T) {
	messageRepo := repositories.NewMockMessageRepository()
	service := services.NewMessageService(messageRepo, new(MockPostRepository), new(MockUserRepository))

	userA := &models.User{ID: "user-a"}
	userB := &models.User{ID: "user-b"}
	post1 := &models.Post{ID: "post-1"}

	base := time.Now()
	incoming1 := seedMessage("m1", post1, userB, userA, base)
	incoming2 := seedMessage("m2", post1, userB, userA, base.Add(time.Minute))
	outgoing := seedMessage("m3", post1, userA, userB, base.Add(2*time.Minute))
	for _, msg := range []*models.Message{&incoming1, &incoming2, &outgoing} {
		assert.NoError(t, messageRepo.Create(msg))
	}

	// Only the counterpart's unread messages to the caller flip.
	updated, err := service.MarkConversationRead("post-1", "user-a", "user-b")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// Idempotent: a second call finds nothing unread.
	updated, err = service.MarkConversationRead("post-1", "user-a", "user-b")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	// The caller's own outgoing message is untouched.
	thread, err := service.ListConversation("post-1", "user-a", "user-b")
	assert.NoError(t, err)
	assert.Len(t, thread, 3)
	for _, msg := range thread {
		if msg.SenderID == "user-a" {
			assert.False(t, msg.IsRead)
		} else {
			assert.True(t, msg.IsRead)
		}
	}
}

func TestMessageService_ContactedUsers(t *testing.T) {
	messageRepo := repositories.NewMockMessageRepository()
	mockPostRepo := new(MockPostRepository)
	service := services.NewMessageService(messageRepo, mockPostRepo, new(MockUserRepository))

	owner := &models.User{ID: "owner-1"}
	userB := &models.User{ID: "user-b"}
	userC := &models.User{ID: "user-c"}
	post := &models.Post{ID: "post-1", OwnerID: "owner-1"}
	mockPostRepo.On("GetByID", "post-1").Return(post, nil)

	base := time.Now()
	msgs := []models.Message{
		seedMessage("m1", post, userB, owner, base),
		seedMessage("m2", post, owner, userB, base.Add(time.Minute)),
		seedMessage("m3", post, userC, owner, base.Add(2*time.Minute)),
	}
	for i := range msgs {
		assert.NoError(t, messageRepo.Create(&msgs[i]))
	}

	users, err := service.ContactedUsers("post-1", "owner-1")
	assert.NoError(t, err)
	assert.Len(t, users, 2)

	// Only the owner may list contacts.
	_, err = service.ContactedUsers("post-1", "user-b")
	assert.ErrorIs(t, err, models.ErrForbidden)
}
