package repositories

import "campustrade/internal/models"

// ReportRepository defines the interface for abuse reports. The store
// is append-only from this API's point of view.
type ReportRepository interface {
	Create(report *models.Report) error
}
