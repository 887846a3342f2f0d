package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
)

func dbError(c *gin.Context, err error, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read the archive statistics"})
	logs.LogJSON("ERROR", msg, map[string]interface{}{
		"error":  err.Error(),
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	})
}

// GetDashboardStats GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	stats, err := LoadStats()
	if err != nil {
		dbError(c, err, "Admin stats error")
		return
	}

	c.JSON(http.StatusOK, stats)
	logs.LogJSON("INFO", "Admin stats retrieved", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	})
}

// GetChartData GET /api/admin/charts/:type?start_date=&end_date=
func GetChartData(c *gin.Context) {
	chartType := c.Param("type")

	start, end, err := DateRange(c.Query("start_date"), c.Query("end_date"), time.Now())
	if errors.Is(err, ErrRangeTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The chart range cannot exceed 366 days"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must use the YYYY-MM-DD format"})
		return
	}

	var data interface{}
	switch chartType {
	case "evolution":
		data, err = Evolution(start, end)
	case "distribution":
		data, err = Distribution(start, end)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported chart type"})
		return
	}
	if err != nil {
		dbError(c, err, "Chart data error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
	logs.LogJSON("INFO", "Chart data retrieved", map[string]interface{}{
		"route":     c.FullPath(),
		"userID":    c.GetString("user_id"),
		"chartType": chartType,
		"startDate": start.Format(dateLayout),
		"endDate":   end.Format(dateLayout),
	})
}

// GetTopAuthors GET /api/admin/top-authors?limit=
func GetTopAuthors(c *gin.Context) {
	limit := DefaultTopLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= MaxTopLimit {
			limit = parsed
		}
	}

	authors, err := TopAuthors(limit)
	if err != nil {
		dbError(c, err, "Top authors error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors})
}
