package post

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
)

// GetComments GET /api/posts/:id/comments
func GetComments(c *gin.Context) {
	postID := c.Param("id")

	comments, err := ListComments(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "The whispers could not be heard."})
		logs.LogJSON("ERROR", "Comment listing error", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment POST /api/posts/:id/comments {content}
func AddComment(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A whisper cannot be empty."})
		return
	}
	if len([]rune(content)) > MaxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This whisper is too long."})
		return
	}

	exists, err := Exists(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "The archive could not be opened."})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
	}
	if err := CreateComment(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Your whisper was lost."})
		logs.LogJSON("ERROR", "Comment insertion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if p, err := profile.FindByID(userID); err == nil {
		comment.Author = p
	}
	comment.fillAuthor()

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
	logs.LogJSON("INFO", "Comment added", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}

// RemoveComment DELETE /api/comments/:id (auteur ou admin)
func RemoveComment(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	comment, err := FindComment(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "The archive could not be opened."})
		return
	}
	if !canModerate(c, comment.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This whisper is not yours to silence."})
		return
	}

	if err := DeleteComment(comment.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not remove the comment."})
		logs.LogJSON("ERROR", "Comment deletion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
