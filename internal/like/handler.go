package like

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/post"
)

// postExists répond 404/500 lui-même quand le post n'est pas utilisable
func postExists(c *gin.Context, postID string) bool {
	exists, err := post.Exists(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
			"postID": postID,
		})
		return false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		logs.LogJSON("WARN", "Post not found", map[string]interface{}{
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
			"postID": postID,
		})
		return false
	}
	return true
}

// ToggleLike POST /api/posts/:id/like
func ToggleLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if !postExists(c, postID) {
		return
	}

	liked, err := Toggle(userID, postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the like"})
		logs.LogJSON("ERROR", "Like toggle error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	resp, err := Status(postID, userID)
	if err != nil {
		// le toggle est déjà validé, on renvoie au moins l'état de l'utilisateur
		resp = Tally{PostID: postID, IsLiked: liked}
	}
	c.JSON(http.StatusOK, resp)
	logs.LogJSON("INFO", "Like toggled", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
		"liked":  liked,
	})
}

// GetLikeStatus GET /api/posts/:id/likes
func GetLikeStatus(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id") // vide si non connecté

	if !postExists(c, postID) {
		return
	}

	resp, err := Status(postID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		logs.LogJSON("ERROR", "Like status error", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"postID": postID,
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}
