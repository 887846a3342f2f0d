package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/config"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/database"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/gemini"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/post"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/storage"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logs.LogJSON("FATAL", "Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	if err := database.Connect(cfg.DBUrl, gin.Mode() != gin.ReleaseMode); err != nil {
		logs.LogJSON("FATAL", "Database connection failed", map[string]interface{}{"error": err.Error()})
	}

	if err := storage.InitS3(context.Background(), storage.Config{
		SupabaseURL: cfg.SupabaseURL,
		Endpoint:    cfg.StorageEndpoint,
		Region:      cfg.StorageRegion,
		Bucket:      cfg.StorageBucket,
		AccessKey:   cfg.StorageAccessKey,
		SecretKey:   cfg.StorageSecretKey,
	}); err != nil {
		logs.LogJSON("FATAL", "Storage initialisation failed", map[string]interface{}{"error": err.Error()})
	}

	supabase.Init(cfg.SupabaseURL, cfg.SupabaseAnon, cfg.SupabaseSecret)

	prompts := gemini.DefaultPrompts()
	if cfg.PromptsFile != "" {
		if prompts, err = gemini.LoadPrompts(cfg.PromptsFile); err != nil {
			logs.LogJSON("FATAL", "Prompt catalog invalid", map[string]interface{}{
				"error": err.Error(),
				"file":  cfg.PromptsFile,
			})
		}
	}
	if cfg.GeminiAPIKey == "" {
		logs.LogJSON("WARN", "GEMINI_API_KEY not set, generation endpoints will answer 503", nil)
	}
	post.SetGenerator(gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, prompts))

	profile.SetAdminEmails(cfg.AdminEmails)

	r := setupRouter(cfg)

	logs.LogJSON("INFO", "Server starting", map[string]interface{}{"port": cfg.Port})
	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
