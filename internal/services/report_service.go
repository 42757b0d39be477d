package services

import (
	"fmt"

	"campustrade/internal/models"
	"campustrade/internal/repositories"
)

// ReportService handles abuse report creation. There is no resolution
// workflow here; reports are written for out-of-band moderation.
type ReportService struct {
	reportRepo repositories.ReportRepository
	userRepo   repositories.UserRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

// CreateReport files a report against a user, optionally tied to a
// post. Self-reporting is rejected and the reported user must exist.
func (s *ReportService) CreateReport(reporterID, reportedUserID string, reportedPostID *string, reason, description string) (*models.Report, error) {
	if reportedUserID == reporterID {
		return nil, fmt.Errorf("cannot report yourself: %w", models.ErrInvalidArgument)
	}
	if _, err := s.userRepo.GetByID(reportedUserID); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReporterID:     reporterID,
		ReportedUserID: &reportedUserID,
		ReportedPostID: reportedPostID,
		Reason:         reason,
		Description:    description,
		Status:         models.ReportPending,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}
