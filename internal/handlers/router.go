package handlers

import (
	"github.com/SAP-F-2025/proctoring-service/internal/services"
	"github.com/SAP-F-2025/proctoring-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	violationHandler *ViolationHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		violationHandler: NewViolationHandler(serviceManager.Violation(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Attempt-scoped violation log (written by the reporting client)
		attempts := v1.Group("/attempts")
		{
			attempts.POST("/:attempt_id/violations", hm.violationHandler.RecordViolation)
			attempts.GET("/:attempt_id/violations", hm.violationHandler.GetAttemptViolations)
			attempts.GET("/:attempt_id/violations/summary", hm.violationHandler.GetAttemptSummary)
		}

		// Review UI read endpoints
		assessments := v1.Group("/assessments")
		{
			assessments.GET("/:assessment_id/violations", hm.violationHandler.GetAssessmentViolations)
			assessments.GET("/:assessment_id/violations/export", hm.violationHandler.ExportAssessmentViolations)
		}

		students := v1.Group("/students")
		{
			students.GET("/:student_id/violations", hm.violationHandler.GetStudentViolations)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "proctoring-service",
		})
	})
}
