package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

// AdminOnlyMiddleware réserve les routes /api/admin aux gardiens (liste blanche ou rôle admin).
// Doit être placé après AuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			refuseAdmin(c, http.StatusUnauthorized, "Not authenticated", "Anonymous request on admin route", nil)
			return
		}

		allowed, err := profile.HasAdminAccess(userID, c.GetString("email"))
		switch {
		case err != nil:
			refuseAdmin(c, http.StatusInternalServerError, "Could not verify your guardian rights.", "Admin role lookup failed", err)
		case !allowed:
			refuseAdmin(c, http.StatusForbidden, "Only the guardians of the dreamscape may enter.", "Admin route refused", nil)
		default:
			c.Set("is_admin", true)
			c.Next()
		}
	}
}

func refuseAdmin(c *gin.Context, status int, message, logMsg string, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})

	level, fields := "WARN", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	}
	if err != nil {
		level = "ERROR"
		fields["error"] = err.Error()
	}
	logs.LogJSON(level, logMsg, fields)
}
