package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-relay/dto"
	"blog-relay/internal/logger"
	"blog-relay/metrics"
	"blog-relay/services"
)

const fetchBlogsFailed = "Failed to fetch blogs from the database."

// RootHandler godoc
// @Summary      Liveness text
// @Produce      plain
// @Success      200  {string}  string  "server running...."
// @Router       / [get]
func RootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "server running....")
	}
}

// ListPublishedBlogsHandler godoc
// @Summary      List published posts
// @Description  Every post whose status is published. Drafts are never returned.
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   dto.BlogPostDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs [get]
func ListPublishedBlogsHandler(svc *services.BlogService, log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Log
	}
	return func(c *gin.Context) {
		items, err := svc.ListPublished(c.Request.Context())
		if err != nil {
			log.Errorf("list published posts: %v", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: fetchBlogsFailed})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Pings the store. 503 when it does not answer.
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func HealthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ping(c.Request.Context())
		metrics.SetStoreReachable(err == nil)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
