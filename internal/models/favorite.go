package models

import "time"

// Favorite is pure membership: the composite key is the whole state.
type Favorite struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
