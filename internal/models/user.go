package models

import "time"

// User represents a registered member of the marketplace.
// Registration is restricted to school email addresses; that check
// lives in the auth service where the configured domain is known.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username      string    `json:"username" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Password      string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	AvatarURL     string    `json:"avatar_url" gorm:"type:varchar(1024)"`
	SuccessTrades int       `json:"success_trades" gorm:"not null;default:0"` // lifetime counter, never decremented
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
