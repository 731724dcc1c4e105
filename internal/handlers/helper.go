package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SAP-F-2025/proctoring-service/internal/models"
	"github.com/SAP-F-2025/proctoring-service/internal/repositories"
	"github.com/gin-gonic/gin"
)

// parseUintParam parses a numeric path parameter, responding 400 and
// returning 0 when it is missing or malformed.
func parseUintParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// parseViolationFilters reads the shared list query parameters.
func parseViolationFilters(c *gin.Context) repositories.ViolationFilters {
	filters := repositories.ViolationFilters{
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		vt := models.ViolationType(typeStr)
		filters.Type = &vt
	}
	if fromStr := c.Query("date_from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filters.DateFrom = &from
		}
	}
	if toStr := c.Query("date_to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			filters.DateTo = &to
		}
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && limit > 0 {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && offset > 0 {
		filters.Offset = offset
	}

	return filters
}
