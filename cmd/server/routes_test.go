package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/config"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := setupRouter(&config.Config{JWTSecret: "secret", RateLimitPerMinute: 5})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	// les routes protégées refusent les requêtes sans jeton
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/posts/mine"},
		{http.MethodPost, "/api/posts/story"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodDelete, "/api/comments/c-1"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}
