package post

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/utils"
)

// publish téléverse l'image puis enregistre le post; l'image est retirée si l'insertion échoue
func publish(c *gin.Context, img *imageFile, folder string, p *Post) {
	route := c.FullPath()
	ctx := c.Request.Context()

	if img != nil {
		url, err := uploadImage(ctx, img, folder)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image offering."})
			logs.LogJSON("ERROR", "Image upload error", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": p.UserID,
			})
			return
		}
		p.ImageURL = url
	}

	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	if err := Create(p); err != nil {
		if img != nil {
			removeUploaded(ctx, p.ImageURL)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scribe to the archive."})
		logs.LogJSON("ERROR", "Post insertion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": p.UserID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Published", "post": p})
	logs.LogJSON("INFO", "Post published", map[string]interface{}{
		"route":  route,
		"userID": p.UserID,
		"postID": p.ID,
		"type":   p.Type,
	})
}

// PublishStory POST /api/posts/story (multipart: image, story)
func PublishStory(c *gin.Context) {
	userID := c.GetString("user_id")

	story := strings.TrimSpace(c.PostForm("story"))
	if story == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "There is no story to publish."})
		return
	}

	img, err := readImage(c, "image")
	if err != nil {
		imageError(c, err)
		return
	}

	title := utils.FirstLine(story)
	if title == "" {
		title = UntitledVision
	}

	publish(c, img, userID, &Post{
		UserID:  userID,
		Title:   title,
		Content: story,
		Type:    TypeStory,
		Status:  StatusActive,
	})
}

// PublishImage POST /api/posts/image {story, image}
func PublishImage(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		Story string `json:"story"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Story) == "" || input.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both the story and its vision are required."})
		return
	}

	img, err := imageFromDataURL(input.Image)
	if err != nil {
		imageError(c, err)
		return
	}

	publish(c, img, userID, &Post{
		UserID:  userID,
		Title:   GeneratedTitle,
		Content: input.Story,
		Type:    TypeImage,
		Status:  StatusActive,
	})
}

// PublishChapter POST /api/admin/posts (multipart: title, content, series, complete, image | image_data)
func PublishChapter(c *gin.Context) {
	userID := c.GetString("user_id")

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || strings.TrimSpace(content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A chapter needs a title and a tale."})
		return
	}

	series := strings.TrimSpace(c.PostForm("series"))
	if series == "" {
		series = DefaultSeries
	}
	status := StatusActive
	if complete, _ := strconv.ParseBool(c.PostForm("complete")); complete {
		status = StatusComplete
	}

	var img *imageFile
	var err error
	if _, ferr := c.FormFile("image"); ferr == nil {
		img, err = readImage(c, "image")
	} else if data := c.PostForm("image_data"); data != "" {
		// L'inspiration générée est téléversée, jamais stockée en data URL
		img, err = imageFromDataURL(data)
	}
	if err != nil {
		imageError(c, err)
		return
	}

	publish(c, img, "admin", &Post{
		UserID:      userID,
		Title:       title,
		Content:     content,
		Type:        TypeStory,
		StorySeries: series,
		Status:      status,
	})
}

// GetCommunityPosts GET /api/posts?limit=&type=
func GetCommunityPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(CommunityLimit)))
	postType := c.Query("type")
	if postType != "" && !ValidType(postType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown post type"})
		return
	}

	posts, err := ListCommunity(limit, postType)
	if err != nil {
		listFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetMyPosts GET /api/posts/mine
func GetMyPosts(c *gin.Context) {
	posts, err := ListByUser(c.GetString("user_id"))
	if err != nil {
		listFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostByID GET /api/posts/:id
func GetPostByID(c *gin.Context) {
	p, err := FindByID(c.Param("id"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": p})
}

// DeletePost DELETE /api/posts/:id (auteur ou admin)
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	p, err := FindByID(c.Param("id"))
	if err != nil {
		notFoundOrError(c, err)
		return
	}

	if !canModerate(c, p.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This tale is not yours to unmake."})
		return
	}

	if err := Delete(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not remove the post."})
		logs.LogJSON("ERROR", "Post deletion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": p.ID,
		})
		return
	}
	if p.ImageURL != "" {
		removeUploaded(c.Request.Context(), p.ImageURL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	logs.LogJSON("INFO", "Post deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": p.ID,
	})
}

// GetActiveSeries GET /api/series/active
func GetActiveSeries(c *gin.Context) {
	posts, err := ListSeriesChapters(StatusActive)
	if err != nil {
		listFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetCurrentTale GET /api/series/current
func GetCurrentTale(c *gin.Context) {
	posts, err := ListSeriesChapters(StatusActive)
	if err != nil {
		listFailed(c, err)
		return
	}
	tale := CurrentTale(posts)
	if tale == nil {
		c.JSON(http.StatusOK, gin.H{"series": nil, "chapters": []Post{}})
		return
	}
	c.JSON(http.StatusOK, tale)
}

// GetBookshelf GET /api/series/completed
func GetBookshelf(c *gin.Context) {
	posts, err := ListSeriesChapters(StatusComplete)
	if err != nil {
		listFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": Bookshelf(posts)})
}

// UpdateSeriesStatus PATCH /api/admin/series/:name {status}
func UpdateSeriesStatus(c *gin.Context) {
	series := c.Param("name")

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or complete"})
		return
	}

	n, err := SetSeriesStatus(series, input.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the series."})
		logs.LogJSON("ERROR", "Series update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": c.GetString("user_id"),
			"series": series,
		})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No such series."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": series, "status": input.Status, "chapters": n})
}

func canModerate(c *gin.Context, ownerID string) bool {
	userID := c.GetString("user_id")
	if userID != "" && userID == ownerID {
		return true
	}
	isAdmin, err := profile.HasAdminAccess(userID, c.GetString("email"))
	return err == nil && isAdmin
}

func listFailed(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "The archive could not be opened."})
	logs.LogJSON("ERROR", "Post listing error", map[string]interface{}{
		"error":  err.Error(),
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	})
}

func notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "The archive could not be opened."})
	logs.LogJSON("ERROR", "Post fetch error", map[string]interface{}{
		"error": err.Error(),
		"route": c.FullPath(),
	})
}
