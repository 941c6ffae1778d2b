package handler

import (
	"net/http"

	"nubenet/internal/media"
	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// IngestMedia 远程媒体抓取：下载外部平台视频并转存到对象存储
func IngestMedia(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	var req struct {
		URL      string `json:"url" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少视频链接"})
		return
	}

	file, err := media.Ingest(c.Request.Context(), service.GetBlobStore(), req.URL, req.Category, ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "下载过程中发生意外错误")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":    file,
		"message": "视频已下载并转存",
	})
}

// GetDownloaderCategories 下载表单用的已知分类集合
func GetDownloaderCategories(c *gin.Context) {
	categories, err := service.ListCategories()
	if err != nil {
		WriteServiceError(c, err, "获取分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
