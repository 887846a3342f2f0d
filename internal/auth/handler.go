package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/supabase"
)

// authError convertit une erreur Supabase en réponse HTTP
func authError(c *gin.Context, err error, fallback string) {
	var authErr *supabase.AuthError
	if errors.As(err, &authErr) && authErr.Status >= 400 && authErr.Status < 500 {
		c.JSON(authErr.Status, gin.H{"error": authErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}

func rollbackSignup(c *gin.Context, userID string) {
	if err := supabase.Auth.DeleteUser(c.Request.Context(), userID); err != nil {
		logs.LogJSON("ERROR", "Orphaned auth user could not be removed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": userID,
		})
		return
	}
	logs.LogJSON("WARN", "Auth user removed after failed signup", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": userID,
	})
}

// Signup : inscription (vérifie le nom puis crée le compte Supabase et le profil)
func Signup(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	// 1. Le nom doit être libre
	if err := profile.ValidateUsername(input.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	taken, err := profile.ExistsByUsername(input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		logs.LogJSON("ERROR", "Username availability check failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": profile.UsernameTakenMessage(input.Name)})
		return
	}

	// 2. Création du compte
	user, err := supabase.Auth.SignUp(c.Request.Context(), input.Email, input.Password, map[string]interface{}{
		"name": input.Name,
	})
	if err != nil {
		authError(c, err, "Authentication failed")
		logs.LogJSON("WARN", "Supabase signup error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	// 3. Profil applicatif
	newProfile := profile.Profile{
		ID:        user.ID,
		CreatedAt: time.Now(),
		Username:  input.Name,
		Email:     strings.ToLower(input.Email),
		Role:      profile.RoleUser,
	}
	if err := profile.Create(&newProfile); err != nil {
		logs.LogJSON("ERROR", "Profile insertion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": user.ID,
		})
		// sans profil le compte Supabase est inutilisable, on le retire
		rollbackSignup(c, user.ID)
		if errors.Is(err, profile.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": profile.UsernameTakenMessage(input.Name)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Your soul was bound but your name was lost. Contact an admin."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to the Dreamscape",
		"user":    newProfile,
	})
	logs.LogJSON("INFO", "User signed up", map[string]interface{}{
		"route":  route,
		"userID": user.ID,
	})
}

// Login : connexion par email / mot de passe
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	session, err := supabase.Auth.SignIn(c.Request.Context(), strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		authError(c, err, "Authentication failed")
		logs.LogJSON("WARN", "Login failed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	c.JSON(http.StatusOK, session)
}

// Refresh : renouvelle la session
func Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	session, err := supabase.Auth.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		authError(c, err, "Session refresh failed")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout : révoque la session côté Supabase
func Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := supabase.Auth.SignOut(c.Request.Context(), token); err != nil {
		logs.LogJSON("WARN", "Supabase logout error", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
