package models

// Category groups posts for filtering. The set is fixed at deploy time
// and seeded on startup; there is no mutation API.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
}
