package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-relay/api/handlers"
	"blog-relay/api/middleware"
	_ "blog-relay/docs"
	"blog-relay/internal/logger"
	"blog-relay/services"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Blogs *services.BlogService
	// Ping checks the store for /health.
	Ping func(ctx context.Context) error
	Log  logger.Logger
}

// New builds the gin engine with every route registered.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogging(d.Log))

	ping := d.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	r.GET("/health", handlers.HealthHandler(ping))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", handlers.RootHandler())
	r.GET("/blogs", handlers.ListPublishedBlogsHandler(d.Blogs, d.Log))

	return r
}

// Handler is New wrapped in a CORS handler that allows every origin.
func Handler(d Deps) http.Handler {
	return cors.AllowAll().Handler(New(d))
}
