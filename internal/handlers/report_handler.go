package handlers

import (
	"net/http"

	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/reports"

	"github.com/gin-gonic/gin"
)

// GetReportSummary handles GET /api/reports/summary?from&to (admin)
func GetReportSummary(c *gin.Context) {
	from, ok := parseDateParam(c.Query("from"), false)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return
	}
	to, ok := parseDateParam(c.Query("to"), true)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return
	}

	summary, err := reports.BuildSummary(database.GetDB(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
