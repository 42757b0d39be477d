package models

import "time"

// Transaction records the two-sided confirmation handshake that
// finalizes a sale. There is at most one per post (unique index).
//
// Invariant: Completed is true iff both confirmation flags are true,
// and it never reverts. CompletedAt is stamped exactly once, together
// with the success_trades increments for both parties.
type Transaction struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID          string     `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex"`
	SellerID        string     `json:"seller_id" gorm:"type:varchar(36);not null;index"`
	BuyerID         string     `json:"buyer_id" gorm:"type:varchar(36);not null;index"`
	SellerConfirmed bool       `json:"seller_confirmed" gorm:"not null;default:false"`
	BuyerConfirmed  bool       `json:"buyer_confirmed" gorm:"not null;default:false"`
	Completed       bool       `json:"completed" gorm:"not null;default:false;index"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at"`

	Post   *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
	Seller *User `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Buyer  *User `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
