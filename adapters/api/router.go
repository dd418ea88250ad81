package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the HTTP routes around a handler.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/statcheck", h.HandleStatcheck())
		v1.POST("/grim", h.HandleGRIM())
		v1.GET("/reports/:id", h.HandleGetReport())
		v1.GET("/reports", h.HandleListReports())
	}
	return r
}
