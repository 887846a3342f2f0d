package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrMissingAPIKey    = errors.New("gemini: API key is missing")
	ErrNoImage          = errors.New("gemini: no image data returned")
	ErrInvalidWordCount = errors.New("gemini: unsupported word count")
)

// WordCounts liste les longueurs d'histoire proposées à l'utilisateur
var WordCounts = []int{500, 1000, 2500}

const DefaultWordCount = 500

func ValidWordCount(n int) bool {
	for _, wc := range WordCounts {
		if wc == n {
			return true
		}
	}
	return false
}

// Image est une image générée, encodée en base64 comme renvoyée par l'API
type Image struct {
	MimeType string
	Data     string
}

func (i *Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MimeType, i.Data)
}

type Inspiration struct {
	Prompt string
	Image  *Image
}

type Client struct {
	http    *resty.Client
	apiKey  string
	prompts *Prompts
}

func NewClient(apiKey, baseURL string, prompts *Prompts) *Client {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(2*time.Minute).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	return &Client{http: rc, apiKey: apiKey, prompts: prompts}
}

// GenerateStoryFromImage écrit une histoire d'environ wordCount mots inspirée de l'image
func (c *Client) GenerateStoryFromImage(ctx context.Context, image []byte, mimeType string, wordCount int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if !ValidWordCount(wordCount) {
		return "", ErrInvalidWordCount
	}

	prompt, err := render(c.prompts.StoryFromImage, promptData{WordCount: wordCount})
	if err != nil {
		return "", fmt.Errorf("prompt story_from_image: %w", err)
	}

	resp, err := c.generate(ctx, c.prompts.Models.Text, generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: prompt},
			},
		}},
	})
	if err != nil {
		return "", err
	}

	if text := resp.text(); text != "" {
		return text, nil
	}
	return c.prompts.Fallbacks.Story, nil
}

// GenerateStoryFromPrompt écrit une histoire à partir d'une consigne libre
func (c *Client) GenerateStoryFromPrompt(ctx context.Context, prompt string, wordCount int) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if wordCount == 0 {
		wordCount = DefaultWordCount
	}
	if !ValidWordCount(wordCount) {
		return "", ErrInvalidWordCount
	}

	text, err := render(c.prompts.StoryFromPrompt, promptData{WordCount: wordCount, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("prompt story_from_prompt: %w", err)
	}

	resp, err := c.generate(ctx, c.prompts.Models.Text, textRequest(text))
	if err != nil {
		return "", err
	}
	if out := resp.text(); out != "" {
		return out, nil
	}
	return c.prompts.Fallbacks.PromptStory, nil
}

// GenerateImageFromStory résume l'histoire en description visuelle puis génère l'image
func (c *Client) GenerateImageFromStory(ctx context.Context, story string) (*Image, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	summaryPrompt, err := render(c.prompts.ImageSummary, promptData{Story: excerpt(story, c.prompts.StoryExcerptLimit)})
	if err != nil {
		return nil, fmt.Errorf("prompt image_summary: %w", err)
	}

	summary, err := c.generate(ctx, c.prompts.Models.Text, textRequest(summaryPrompt))
	if err != nil {
		return nil, fmt.Errorf("résumé visuel: %w", err)
	}

	imagePrompt := summary.text()
	if imagePrompt == "" {
		imagePrompt = c.prompts.Fallbacks.ImagePrompt
	}

	return c.generateImage(ctx, imagePrompt+c.prompts.ImageStyle)
}

// GenerateInspiration invente un personnage dark fantasy et son illustration
func (c *Client) GenerateInspiration(ctx context.Context) (*Inspiration, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.generate(ctx, c.prompts.Models.Text, textRequest(c.prompts.Inspiration))
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	prompt := resp.text()
	if prompt == "" {
		prompt = c.prompts.Fallbacks.Inspiration
	}

	img, err := c.generateImage(ctx, prompt+c.prompts.InspirationStyle)
	if err != nil {
		return nil, err
	}
	return &Inspiration{Prompt: prompt, Image: img}, nil
}

func (c *Client) generateImage(ctx context.Context, prompt string) (*Image, error) {
	req := textRequest(prompt)
	req.GenerationConfig = &generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}}

	resp, err := c.generate(ctx, c.prompts.Models.Image, req)
	if err != nil {
		return nil, err
	}
	img := resp.image()
	if img == nil {
		return nil, ErrNoImage
	}
	return img, nil
}

func (c *Client) generate(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	var out generateResponse
	var apiErr apiErrorBody

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("model", model).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/{model}:generateContent")
	if err != nil {
		return nil, fmt.Errorf("appel Gemini %s: %w", model, err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("gemini %s: %d %s", model, resp.StatusCode(), msg)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" && len(out.Candidates) == 0 {
		return nil, fmt.Errorf("gemini %s: prompt blocked (%s)", model, out.PromptFeedback.BlockReason)
	}
	return &out, nil
}

func excerpt(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

func textRequest(text string) generateRequest {
	return generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: text}}}}}
}

// Texte concaténé des parts du premier candidat
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

func (r *generateResponse) image() *Image {
	for _, cand := range r.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return &Image{MimeType: p.InlineData.MimeType, Data: p.InlineData.Data}
			}
		}
	}
	return nil
}
