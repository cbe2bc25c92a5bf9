package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"quill/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, env *Env, corsOrigin string) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	// CORS is restricted to the single configured frontend origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")

	// Credential endpoints are rate limited per IP against brute force.
	limiter := NewIPRateLimiter(rate.Limit(authRateLimitRPS), authRateLimitBurst)
	authRoutes := api.Group("/auth", RateLimitMiddleware(limiter))
	{
		authRoutes.POST("/register", env.Register)
		authRoutes.POST("/login", env.Login)
	}

	// Public reads.
	api.GET("/posts", env.ListPosts)
	api.GET("/posts/:id", env.GetPost)
	api.GET("/posts/:id/comments", env.ListComments)

	// Mutations require a valid bearer token.
	protected := api.Group("", AuthRequired(env.Tokens, env.Auth))
	{
		protected.POST("/posts", env.CreatePost)
		protected.PUT("/posts/:id", env.UpdatePost)
		protected.DELETE("/posts/:id", env.DeletePost)
		protected.POST("/posts/:id/comments", env.CreateComment)
		protected.PUT("/comments/:id", env.UpdateComment)
		protected.DELETE("/comments/:id", env.DeleteComment)
	}

	// Live event feed.
	if env.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			ws.ServeWs(env.Hub, c.Writer, c.Request)
		})
	}
}
