package handlers

import (
	"log"

	"campustrade/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for abuse reports.
type ReportHandler struct {
	reportService *services.ReportService
	validate      *validator.Validate
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validate:      validator.New(),
	}
}

// RegisterProtectedRoutes registers the report routes.
func (h *ReportHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/reports", h.HandleCreateReport)
}

// CreateReportRequest represents the request body for filing a report.
type CreateReportRequest struct {
	ReportedUserID string  `json:"reported_user_id" validate:"required"`
	ReportedPostID *string `json:"reported_post_id"`
	Reason         string  `json:"reason" validate:"required,max=255"`
	Description    string  `json:"description"`
}

// HandleCreateReport files a report against a user.
func (h *ReportHandler) HandleCreateReport(c *fiber.Ctx) error {
	var req CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create report body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	report, err := h.reportService.CreateReport(currentUserID(c), req.ReportedUserID, req.ReportedPostID, req.Reason, req.Description)
	if err != nil {
		log.Printf("Error creating report: %v", err)
		return respondError(c, err, "Could not create report")
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
