// Package api assembles the gin engine: middleware chain, validators, routes.
package api

import (
	"regexp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/middleware"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,80}$`)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	}
}

// NewRouter wires the middleware chain and every route onto a fresh engine.
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware("microblog"),
	)

	secret := cfg.JWT.Secret
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}

		// reads resolve identity when present so visibility checks see it
		read := v1.Group("", middleware.OptionalAuth(secret))
		{
			read.GET("/posts", h.GlobalFeed)
			read.GET("/posts/:id", h.GetPost)
			read.GET("/posts/:id/comments", h.ListComments)
			read.GET("/tags/:tag", h.TagFeed)
			read.GET("/users/:id/following", h.ListFollowing)
			read.GET("/users/:id/followers", h.ListFollowers)
		}

		authed := v1.Group("", middleware.RequireAuth(secret))
		{
			authed.POST("/posts", h.CreatePost)
			authed.PUT("/posts/:id", h.UpdatePost)
			authed.DELETE("/posts/:id", h.DeletePost)
			authed.POST("/posts/:id/comments", h.AddComment)
			authed.GET("/feed", h.FollowingFeed)
			authed.POST("/users/:id/follow", h.Follow)
			authed.POST("/users/:id/unfollow", h.Unfollow)
		}
	}

	return r
}
