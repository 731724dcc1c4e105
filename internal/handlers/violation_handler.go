package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/proctoring-service/internal/services"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ViolationHandler struct {
	BaseHandler
	violationService services.ViolationService
	exportService    services.ExportService
}

func NewViolationHandler(
	violationService services.ViolationService,
	exportService services.ExportService,
	logger utils.Logger,
) *ViolationHandler {
	return &ViolationHandler{
		BaseHandler:      NewBaseHandler(logger),
		violationService: violationService,
		exportService:    exportService,
	}
}

// RecordViolation appends a violation to an attempt's log
// @Summary Record violation
// @Description Appends one detected violation to the attempt's violation log
// @Tags violations
// @Accept json
// @Produce json
// @Param attempt_id path uint true "Attempt ID"
// @Param violation body services.RecordViolationRequest true "Violation data"
// @Success 201 {object} models.ViolationEvent
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts/{attempt_id}/violations [post]
func (h *ViolationHandler) RecordViolation(c *gin.Context) {
	attemptID := parseUintParam(c, "attempt_id")
	if attemptID == 0 {
		return
	}

	var req services.RecordViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.AttemptID = attemptID

	reqCtx := services.RequestContext{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}

	event, err := h.violationService.Record(c.Request.Context(), &req, reqCtx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetAttemptViolations lists an attempt's violations in detection order
// @Summary Get attempt violations
// @Tags violations
// @Produce json
// @Param attempt_id path uint true "Attempt ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/violations [get]
func (h *ViolationHandler) GetAttemptViolations(c *gin.Context) {
	attemptID := parseUintParam(c, "attempt_id")
	if attemptID == 0 {
		return
	}

	h.LogRequest(c, "Getting attempt violations", "attempt_id", attemptID)

	violations, err := h.violationService.GetByAttempt(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, violations)
}

// GetAttemptSummary returns per-type violation counts for an attempt
// @Summary Get attempt violation summary
// @Tags violations
// @Produce json
// @Param attempt_id path uint true "Attempt ID"
// @Success 200 {object} models.ViolationSummary
// @Router /attempts/{attempt_id}/violations/summary [get]
func (h *ViolationHandler) GetAttemptSummary(c *gin.Context) {
	attemptID := parseUintParam(c, "attempt_id")
	if attemptID == 0 {
		return
	}

	summary, err := h.violationService.GetSummary(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAssessmentViolations lists violations across an assessment's attempts
// @Summary Get assessment violations
// @Tags violations
// @Produce json
// @Param assessment_id path uint true "Assessment ID"
// @Param type query string false "Violation type filter"
// @Param date_from query string false "RFC3339 lower bound"
// @Param date_to query string false "RFC3339 upper bound"
// @Success 200 {object} ListResponse
// @Router /assessments/{assessment_id}/violations [get]
func (h *ViolationHandler) GetAssessmentViolations(c *gin.Context) {
	assessmentID := parseUintParam(c, "assessment_id")
	if assessmentID == 0 {
		return
	}

	filters := parseViolationFilters(c)

	violations, total, err := h.violationService.GetByAssessment(c.Request.Context(), assessmentID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Data: violations, Total: total})
}

// GetStudentViolations lists a student's violations across attempts
// @Summary Get student violations
// @Tags violations
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {object} ListResponse
// @Router /students/{student_id}/violations [get]
func (h *ViolationHandler) GetStudentViolations(c *gin.Context) {
	studentID := parseUintParam(c, "student_id")
	if studentID == 0 {
		return
	}

	filters := parseViolationFilters(c)

	violations, total, err := h.violationService.GetByStudent(c.Request.Context(), studentID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{Data: violations, Total: total})
}

// ExportAssessmentViolations streams the proctor review spreadsheet
// @Summary Export assessment violations
// @Tags violations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param assessment_id path uint true "Assessment ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{assessment_id}/violations/export [get]
func (h *ViolationHandler) ExportAssessmentViolations(c *gin.Context) {
	assessmentID := parseUintParam(c, "assessment_id")
	if assessmentID == 0 {
		return
	}

	h.LogRequest(c, "Exporting assessment violations", "assessment_id", assessmentID)

	file, err := h.exportService.BuildAssessmentReport(c.Request.Context(), assessmentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("violations-assessment-%d.xlsx", assessmentID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if _, err := file.WriteTo(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export file", "assessment_id", assessmentID)
	}
}
