package post

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/gemini"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
)

// Generator est le backend génératif utilisé par les handlers
type Generator interface {
	GenerateStoryFromImage(ctx context.Context, image []byte, mimeType string, wordCount int) (string, error)
	GenerateImageFromStory(ctx context.Context, story string) (*gemini.Image, error)
	GenerateStoryFromPrompt(ctx context.Context, prompt string, wordCount int) (string, error)
	GenerateInspiration(ctx context.Context) (*gemini.Inspiration, error)
}

var generator Generator

func SetGenerator(g Generator) {
	generator = g
}

func parseWordCount(raw string) (int, bool) {
	if raw == "" {
		return gemini.DefaultWordCount, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !gemini.ValidWordCount(n) {
		return 0, false
	}
	return n, true
}

func generationFailed(c *gin.Context, err error, message string) {
	status := http.StatusBadGateway
	if errors.Is(err, gemini.ErrMissingAPIKey) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": message})
	logs.LogJSON("ERROR", "Generation failed", map[string]interface{}{
		"error":  err.Error(),
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	})
}

// GenerateStory POST /api/generate/story (multipart: image, word_count)
func GenerateStory(c *gin.Context) {
	wordCount, ok := parseWordCount(c.PostForm("word_count"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose a length of 500, 1000 or 2500 words."})
		return
	}

	img, err := readImage(c, "image")
	if err != nil {
		imageError(c, err)
		return
	}

	story, err := generator.GenerateStoryFromImage(c.Request.Context(), img.Data, img.MimeType, wordCount)
	if err != nil {
		generationFailed(c, err, "The vision is clouded. The spirits could not speak.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": story, "word_count": wordCount})
	logs.LogJSON("INFO", "Story generated from image", map[string]interface{}{
		"route":     c.FullPath(),
		"userID":    c.GetString("user_id"),
		"wordCount": wordCount,
	})
}

// GenerateImage POST /api/generate/image {story}
func GenerateImage(c *gin.Context) {
	var input struct {
		Story string `json:"story"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Story) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Write a story first."})
		return
	}

	img, err := generator.GenerateImageFromStory(c.Request.Context(), input.Story)
	if err != nil {
		generationFailed(c, err, "The mists are too thick. The vision could not form.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": img.DataURL(), "mime_type": img.MimeType})
	logs.LogJSON("INFO", "Image generated from story", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": c.GetString("user_id"),
	})
}

// GenerateFromPrompt POST /api/generate/prompt {prompt, word_count}
func GenerateFromPrompt(c *gin.Context) {
	var input struct {
		Prompt    string `json:"prompt"`
		WordCount int    `json:"word_count"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The Void needs a whisper to answer."})
		return
	}
	if input.WordCount == 0 {
		input.WordCount = gemini.DefaultWordCount
	}
	if !gemini.ValidWordCount(input.WordCount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choose a length of 500, 1000 or 2500 words."})
		return
	}

	story, err := generator.GenerateStoryFromPrompt(c.Request.Context(), input.Prompt, input.WordCount)
	if err != nil {
		generationFailed(c, err, "The void is silent. Try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"story": story, "word_count": input.WordCount})
}

// Inspiration POST /api/admin/inspiration
func Inspiration(c *gin.Context) {
	insp, err := generator.GenerateInspiration(c.Request.Context())
	if err != nil {
		generationFailed(c, err, "The void failed to answer. Try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt":    insp.Prompt,
		"image":     insp.Image.DataURL(),
		"mime_type": insp.Image.MimeType,
	})
}
