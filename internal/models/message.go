package models

import "time"

// Message is one line of a conversation about a post. Messages are
// immutable once written except for IsRead, which only ever flips
// false to true and only by the receiver.
//
// PostID is nullable: when a post is deleted its messages are kept but
// the reference is cleared, and such messages never surface in the
// inbox view.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderID   string    `json:"sender_id" gorm:"type:varchar(36);not null;index"`
	ReceiverID string    `json:"receiver_id" gorm:"type:varchar(36);not null;index"`
	PostID     *string   `json:"post_id" gorm:"type:varchar(36);index"`
	Content    string    `json:"content" gorm:"type:text;not null" validate:"required"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Post     *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

// InboxConversation is one row of the derived inbox view: the latest
// message exchanged with one counterpart about one post.
type InboxConversation struct {
	Post        *Post    `json:"post"`
	OtherUser   *User    `json:"other_user"`
	LastMessage *Message `json:"last_message"`
}
