package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity contient ce que l'API retient d'un access token Supabase
type Identity struct {
	UserID string
	Email  string
	Name   string
}

func parseToken(tokenStr string, jwtSecret []byte) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// Vérifie que Supabase a bien utilisé HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("signature invalide")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token invalide: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims invalides")
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user ID manquant")
	}

	id := &Identity{UserID: userID}
	id.Email, _ = claims["email"].(string)
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		id.Name, _ = meta["name"].(string)
	}
	return id, nil
}

func setIdentity(c *gin.Context, id *Identity) {
	c.Set("user_id", id.UserID)
	c.Set("email", id.Email)
	c.Set("user_name", id.Name)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token requis"})
			return
		}

		id, err := parseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}
