package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/supabase"
)

// OptionalAuthMiddleware identifie l'utilisateur s'il envoie un token, sans bloquer les invités
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		refreshToken := c.GetHeader("X-Refresh-Token")

		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
		if err != nil {
			c.Next()
			return
		}

		// Rafraîchissement si expiré
		if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil &&
			time.Now().After(exp.Time) && refreshToken != "" && supabase.Auth != nil {
			session, err := supabase.Auth.Refresh(c.Request.Context(), refreshToken)
			if err == nil {
				tokenStr = session.AccessToken
				c.Set("access_token", session.AccessToken)
				c.Header("X-New-Access-Token", session.AccessToken)
				if session.RefreshToken != "" {
					c.Header("X-New-Refresh-Token", session.RefreshToken)
				}
			} else {
				logs.LogJSON("WARN", "Token refresh failed", map[string]interface{}{
					"error": err.Error(),
					"route": c.FullPath(),
				})
			}
		}

		// Re-validation avec clé secrète
		if id, err := parseToken(tokenStr, secret); err == nil {
			setIdentity(c, id)
		}

		c.Next()
	}
}
