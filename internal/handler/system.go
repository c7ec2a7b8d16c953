package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mcpmyapi-backend/internal/catalog"
)

// SystemHandler 根路径、探活和目录直查接口
type SystemHandler struct{}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Root GET /，返回服务标识
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "mcpmyapi-backend",
		"status":  "running",
	})
}

// Test GET /test，部署连通性检查
func (h *SystemHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Test endpoint is working"})
}

// Health GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Furniture GET /furniture/:type/:color，直查目录，无匹配返回 404
func (h *SystemHandler) Furniture(c *gin.Context) {
	itemType := c.Param("type")
	color := c.Param("color")

	items := catalog.Filter(itemType, color)
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No furniture found for " + itemType + "/" + color})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
