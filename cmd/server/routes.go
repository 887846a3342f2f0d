package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/admin"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/auth"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/config"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/like"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/logs"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/middleware"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/post"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/profile"
	"github.com/lucid-dreamscapes/Dreamscapes-Back/internal/report"
)

func setupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logs.RequestLogger(), middleware.SecureHeadersMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalMW := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")

	// Authentification
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh", auth.Refresh)
	api.POST("/auth/logout", authMW, auth.Logout)

	// Profils
	api.GET("/profiles/username-available", profile.CheckUsername)
	api.GET("/me", authMW, profile.GetMe)
	api.PATCH("/me", authMW, profile.UpdateMe)

	// Génération (anonyme autorisée, limitée par minute)
	gen := api.Group("/generate", optionalMW, middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	gen.POST("/story", post.GenerateStory)
	gen.POST("/image", post.GenerateImage)
	gen.POST("/prompt", post.GenerateFromPrompt)

	// Archive publique
	public := api.Group("", optionalMW)
	public.GET("/posts", post.GetCommunityPosts)
	public.GET("/posts/:id", post.GetPostByID)
	public.GET("/posts/:id/comments", post.GetComments)
	public.GET("/posts/:id/likes", like.GetLikeStatus)
	public.GET("/series/active", post.GetActiveSeries)
	public.GET("/series/current", post.GetCurrentTale)
	public.GET("/series/completed", post.GetBookshelf)

	// Routes authentifiées
	private := api.Group("", authMW)
	private.GET("/posts/mine", post.GetMyPosts)
	private.POST("/posts/story", post.PublishStory)
	private.POST("/posts/image", post.PublishImage)
	private.DELETE("/posts/:id", post.DeletePost)
	private.POST("/posts/:id/comments", post.AddComment)
	private.DELETE("/comments/:id", post.RemoveComment)
	private.POST("/posts/:id/like", like.ToggleLike)
	private.POST("/reports", report.CreateReport)

	// Administration
	adm := api.Group("/admin", authMW, middleware.AdminOnlyMiddleware())
	adm.POST("/posts", post.PublishChapter)
	adm.POST("/inspiration", middleware.RateLimitMiddleware(cfg.RateLimitPerMinute), post.Inspiration)
	adm.PATCH("/series/:name", post.UpdateSeriesStatus)
	adm.DELETE("/users/:id", profile.DeleteUser)
	adm.GET("/stats", admin.GetDashboardStats)
	adm.GET("/charts/:type", admin.GetChartData)
	adm.GET("/top-authors", admin.GetTopAuthors)
	adm.GET("/reports", report.GetReports)
	adm.GET("/reports/stats", report.GetReportStats)
	adm.PUT("/reports/:id", report.UpdateReport)
	adm.DELETE("/reports/:id", report.DeleteReport)

	return r
}
