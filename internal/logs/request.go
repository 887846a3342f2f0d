package logs

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger remplace le logger texte de gin par une ligne JSON par requête
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := "INFO"
		switch {
		case status >= 500:
			level = "ERROR"
		case status >= 400:
			level = "WARN"
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"route":     route,
			"status":    status,
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIP":  c.ClientIP(),
		}
		if userID := c.GetString("user_id"); userID != "" {
			fields["userID"] = userID
		}
		LogJSON(level, "HTTP request", fields)
	}
}
