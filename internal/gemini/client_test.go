package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path string
	body generateRequest
}

// fakeGemini répond avec les réponses fournies, dans l'ordre
func fakeGemini(t *testing.T, responses ...string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var calls []recorded

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		mu.Lock()
		idx := len(calls)
		calls = append(calls, recorded{path: r.URL.Path, body: body})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if idx >= len(responses) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"unexpected call"}}`))
			return
		}
		_, _ = w.Write([]byte(responses[idx]))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func textResponse(text string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{"content": map[string]interface{}{"parts": []interface{}{map[string]string{"text": text}}}},
		},
	})
	return string(b)
}

const imageResponse = `{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"aGVsbG8="}}]}}]}`

func TestGenerateStoryFromImage(t *testing.T) {
	srv, calls := fakeGemini(t, textResponse("The Hollow Crown\n\nOnce upon a time..."))
	c := NewClient("test-key", srv.URL, nil)

	story, err := c.GenerateStoryFromImage(context.Background(), []byte("jpegbytes"), "image/jpeg", 1000)
	require.NoError(t, err)
	assert.Equal(t, "The Hollow Crown\n\nOnce upon a time...", story)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", call.path)
	parts := call.body.Contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MimeType)
	assert.Equal(t, "anBlZ2J5dGVz", parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, "approximately 1000 words")
}

func TestGenerateStoryFromImageFallback(t *testing.T) {
	srv, _ := fakeGemini(t, `{"candidates":[]}`)
	c := NewClient("test-key", srv.URL, nil)

	story, err := c.GenerateStoryFromImage(context.Background(), []byte("x"), "image/png", 500)
	require.NoError(t, err)
	assert.Equal(t, "Failed to generate story text.", story)
}

func TestGenerateStoryFromPromptFallback(t *testing.T) {
	srv, calls := fakeGemini(t, `{"candidates":[]}`)
	c := NewClient("test-key", srv.URL, nil)

	story, err := c.GenerateStoryFromPrompt(context.Background(), "a drowned bell", 0)
	require.NoError(t, err)
	assert.Equal(t, "Failed to generate story.", story)

	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0].body.Contents[0].Parts[0].Text, "(500 words)")
}

func TestGenerateStoryFromImageValidation(t *testing.T) {
	_, err := NewClient("", "http://unused", nil).GenerateStoryFromImage(context.Background(), nil, "image/png", 500)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewClient("k", "http://unused", nil).GenerateStoryFromImage(context.Background(), nil, "image/png", 42)
	assert.True(t, errors.Is(err, ErrInvalidWordCount))
}

func TestGenerateImageFromStory(t *testing.T) {
	srv, calls := fakeGemini(t, textResponse("A moonlit ruin."), imageResponse)
	c := NewClient("test-key", srv.URL, nil)

	story := strings.Repeat("é", 6000)
	img, err := c.GenerateImageFromStory(context.Background(), story)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", img.DataURL())

	assert.Equal(t, "image/png", img.MimeType)

	require.Len(t, *calls, 2)
	summary := (*calls)[0].body.Contents[0].Parts[0].Text
	assert.Equal(t, 5000, strings.Count(summary, "é"))

	second := (*calls)[1]
	assert.Equal(t, "/models/gemini-2.5-flash-image:generateContent", second.path)
	assert.Equal(t, "A moonlit ruin. --artistic --dark-fantasy --high-quality", second.body.Contents[0].Parts[0].Text)
	require.NotNil(t, second.body.GenerationConfig)
	assert.Contains(t, second.body.GenerationConfig.ResponseModalities, "IMAGE")
}

func TestGenerateImageFromStoryNoImage(t *testing.T) {
	srv, _ := fakeGemini(t, textResponse(""), textResponse("sorry, text only"))
	c := NewClient("test-key", srv.URL, nil)

	_, err := c.GenerateImageFromStory(context.Background(), "short tale")
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestGenerateInspiration(t *testing.T) {
	srv, calls := fakeGemini(t, textResponse("A hooded oracle."), imageResponse)
	c := NewClient("test-key", srv.URL, nil)

	insp, err := c.GenerateInspiration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A hooded oracle.", insp.Prompt)
	assert.Equal(t, "image/png", insp.Image.MimeType)
	assert.True(t, strings.HasSuffix((*calls)[1].body.Contents[0].Parts[0].Text, "--masterpiece"))
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("test-key", srv.URL, nil).GenerateStoryFromPrompt(context.Background(), "a lantern", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
