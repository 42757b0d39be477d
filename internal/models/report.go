package models

import "time"

// ReportStatus tracks moderation progress. Only "pending" is ever set
// through this API; resolution happens out of band.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// Report is an abuse report filed by one user against another, and
// optionally against a specific post. ReportedUserID is nullable so
// the report survives removal of the reported account.
type Report struct {
	ID             string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReporterID     string       `json:"reporter_id" gorm:"type:varchar(36);not null;index"`
	ReportedUserID *string      `json:"reported_user_id" gorm:"type:varchar(36);index"`
	ReportedPostID *string      `json:"reported_post_id" gorm:"type:varchar(36)"`
	Reason         string       `json:"reason" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Description    string       `json:"description" gorm:"type:text"`
	Status         ReportStatus `json:"status" gorm:"type:varchar(10);not null;default:pending"`
	CreatedAt      time.Time    `json:"created_at"`
}
