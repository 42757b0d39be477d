package models

import "time"

// PostType distinguishes what the author wants out of a listing.
type PostType string

const (
	PostTypeSell PostType = "sell"
	PostTypeBuy  PostType = "buy"
	PostTypeFree PostType = "free"
)

// PostCondition describes the physical state of a second-hand item.
type PostCondition string

const (
	ConditionNew     PostCondition = "new"
	ConditionLikeNew PostCondition = "like_new"
	ConditionGood    PostCondition = "good"
	ConditionFair    PostCondition = "fair"
)

// PostStatus is the lifecycle state of a listing. A post moves to
// StatusSold exactly once, when its transaction is created.
type PostStatus string

const (
	StatusAvailable PostStatus = "available"
	StatusSold      PostStatus = "sold"
	StatusHidden    PostStatus = "hidden"
)

// Post is a marketplace listing.
type Post struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string        `json:"title" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Description string        `json:"description" gorm:"type:text" validate:"required"`
	Price       float64       `json:"price" gorm:"not null;default:0" validate:"gte=0"`
	PriceMin    *float64      `json:"price_min,omitempty"` // lower bound for buy posts
	PostType    PostType      `json:"post_type" gorm:"type:varchar(10);not null" validate:"required,oneof=sell buy free"`
	Condition   PostCondition `json:"condition,omitempty" gorm:"type:varchar(10)" validate:"omitempty,oneof=new like_new good fair"`
	Status      PostStatus    `json:"status" gorm:"type:varchar(10);not null;default:available"`
	OwnerID     string        `json:"owner_id" gorm:"type:varchar(36);not null;index"`
	CategoryID  string        `json:"category_id" gorm:"type:varchar(36);not null;index" validate:"required"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Owner    *User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Category *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []PostImage `json:"images" gorm:"foreignKey:PostID"`
}

// PostImage is one uploaded photo attached to a post. The URL points
// into the blob store; the row only records the reference.
type PostImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index"`
	ImageURL  string    `json:"image_url" gorm:"type:varchar(1024);not null"`
	CreatedAt time.Time `json:"created_at"`
}
