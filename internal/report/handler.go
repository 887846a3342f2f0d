package report

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
)

// CreateReport POST /api/reports
func CreateReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report", "details": err.Error()})
		logs.LogJSON("WARN", "Invalid report data", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}
	if !input.TargetType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown target type"})
		return
	}
	if !input.Reason.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report reason"})
		return
	}

	report, err := Create(userID, input)
	switch {
	case errors.Is(err, ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Nothing to report here"})
		logs.LogJSON("WARN", "Report target not found", map[string]interface{}{
			"targetType": input.TargetType,
			"targetID":   input.TargetID,
			"route":      route,
			"userID":     userID,
		})
		return
	case errors.Is(err, ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "You already reported this"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not file the report"})
		logs.LogJSON("ERROR", "Error creating report", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report filed", "report": report})
	logs.LogJSON("INFO", "Report created", map[string]interface{}{
		"reportID":   report.ID,
		"targetType": input.TargetType,
		"targetID":   input.TargetID,
		"route":      route,
		"userID":     userID,
	})
}

// GetReports GET /api/admin/reports?page=&limit=&status=&target_type=&reason=
func GetReports(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	filter := Filter{
		Status:     c.Query("status"),
		TargetType: c.Query("target_type"),
		Reason:     c.Query("reason"),
		Page:       page,
		Limit:      limit,
	}
	filter.normalize()

	reports, total, err := List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load reports"})
		logs.LogJSON("ERROR", "Error fetching reports", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	withTargets := make([]ReportWithTarget, len(reports))
	for i, r := range reports {
		withTargets[i] = WithTarget(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": withTargets,
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
			"pages": (total + int64(filter.Limit) - 1) / int64(filter.Limit),
		},
	})
}

// UpdateReport PUT /api/admin/reports/:id
func UpdateReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	reportID := c.Param("id")

	var input UpdateReportInput
	if err := c.ShouldBindJSON(&input); err != nil || !input.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report status"})
		return
	}

	if err := Review(reportID, userID, input); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the report"})
		logs.LogJSON("ERROR", "Error updating report", map[string]interface{}{
			"error":    err.Error(),
			"reportID": reportID,
			"route":    route,
			"userID":   userID,
		})
		return
	}

	report, err := FindByID(reportID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not reload the report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report updated", "report": report})
	logs.LogJSON("INFO", "Report updated", map[string]interface{}{
		"reportID": reportID,
		"status":   input.Status,
		"route":    route,
		"userID":   userID,
	})
}

// DeleteReport DELETE /api/admin/reports/:id
func DeleteReport(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	reportID := c.Param("id")

	if err := Delete(reportID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the report"})
		logs.LogJSON("ERROR", "Error deleting report", map[string]interface{}{
			"error":    err.Error(),
			"reportID": reportID,
			"route":    route,
			"userID":   userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
	logs.LogJSON("INFO", "Report deleted", map[string]interface{}{
		"reportID": reportID,
		"route":    route,
		"userID":   userID,
	})
}

// GetReportStats GET /api/admin/reports/stats
func GetReportStats(c *gin.Context) {
	stats, err := GetStats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute report stats"})
		logs.LogJSON("ERROR", "Error computing report stats", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
