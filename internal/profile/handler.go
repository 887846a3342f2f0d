package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/storage"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/supabase"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/utils"
)

const maxAvatarBytes = 5 << 20

// UsernameTakenMessage est le message renvoyé quand un nom est déjà pris
func UsernameTakenMessage(name string) string {
	return fmt.Sprintf("The name %q is already woven into the dreamscape. Choose another.", name)
}

// CheckUsername GET /api/profiles/username-available?username=
func CheckUsername(c *gin.Context) {
	route := c.FullPath()
	username := strings.TrimSpace(c.Query("username"))

	if err := ValidateUsername(username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taken, err := ExistsByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not consult the registry of names."})
		logs.LogJSON("ERROR", "Username availability check failed", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"username": username,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "available": !taken})
}

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	email := c.GetString("email")

	p, err := FindByID(userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load your profile."})
		logs.LogJSON("ERROR", "Profile fetch error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	// Le profil peut ne pas encore exister (inscription faite hors API)
	response := gin.H{
		"id":    userID,
		"email": email,
		"name":  DisplayName(p, c.GetString("user_name")),
		"role":  ResolveRole(p, email),
	}
	if p != nil {
		response["avatar"] = p.AvatarURL
		response["created_at"] = p.CreatedAt
	}

	c.JSON(http.StatusOK, gin.H{"user": response})
}

// UpdateMe PATCH /api/me (multipart: username, avatar)
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	p, err := FindByID(userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Profile not found."})
		return
	}

	if username := strings.TrimSpace(c.PostForm("username")); username != "" && !strings.EqualFold(username, p.Username) {
		if err := ValidateUsername(username); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		taken, err := ExistsByUsername(username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not consult the registry of names."})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": UsernameTakenMessage(username)})
			return
		}
		p.Username = username
	}

	file, header, err := c.Request.FormFile("avatar")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
		if err != nil || len(data) > maxAvatarBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar too large."})
			return
		}
		mimeType, ok := utils.ImageMimeType(header.Filename, header.Header.Get("Content-Type"), data)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only images may become your likeness."})
			return
		}

		key := fmt.Sprintf("avatars/%s%s", userID, utils.ExtensionForMime(mimeType))
		url, err := storage.Upload(c.Request.Context(), bytes.NewReader(data), key, mimeType)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image offering."})
			logs.LogJSON("ERROR", "Avatar upload error", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}
		p.AvatarURL = url
	}

	if err := Update(p); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": UsernameTakenMessage(p.Username)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update your profile."})
		logs.LogJSON("ERROR", "Profile update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": p})
	logs.LogJSON("INFO", "Profile updated successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// DeleteUser DELETE /api/admin/users/:id
func DeleteUser(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")
	id := c.Param("id")

	if supabase.Auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Auth provider unavailable."})
		return
	}

	if err := supabase.Auth.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not banish this dreamer.", "details": err.Error()})
		logs.LogJSON("ERROR", "Supabase user deletion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
			"extra":  fmt.Sprintf("Target user : %s", id),
		})
		return
	}

	// La suppression dans auth.users cascade normalement vers profiles
	if err := database.DB.Delete(&Profile{}, "id = ?", id).Error; err != nil {
		logs.LogJSON("WARN", "Profile cleanup error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	logs.LogJSON("INFO", "User deleted successfully", map[string]interface{}{
		"route":  route,
		"userID": currentUserID,
		"extra":  fmt.Sprintf("User deleted successfully : %s", id),
	})
}
