package handler

import (
	"net/http"
	"strconv"

	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFiles 列出文件（可选分类过滤）及全部已知分类
func ListFiles(c *gin.Context) {
	category := c.DefaultQuery("category", "all")

	files, err := service.ListFiles(category)
	if err != nil {
		WriteServiceError(c, err, "获取文件列表失败")
		return
	}

	categories, err := service.ListCategories()
	if err != nil {
		WriteServiceError(c, err, "获取分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files":      files,
		"categories": categories,
		"category":   category,
	})
}

// UploadFile 接收 multipart 上传并转存到对象存储
func UploadFile(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有选择文件"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer src.Close()

	category := c.PostForm("category")

	file, err := service.UploadFile(c.Request.Context(), src, fileHeader.Size, fileHeader.Filename, category, ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "上传文件失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":    file,
		"message": "文件上传成功",
	})
}

// DownloadFile 重定向到文件的存储 URL
func DownloadFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文件ID"})
		return
	}

	url, err := service.DownloadURL(uint(id))
	if err != nil {
		WriteServiceError(c, err, "获取文件失败")
		return
	}

	c.Redirect(http.StatusFound, url)
}

// DeleteFile 删除文件（所有者或管理员）
func DeleteFile(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文件ID"})
		return
	}

	if err := service.DeleteFile(c.Request.Context(), uint(id), ident.UserID, ident.Role); err != nil {
		WriteServiceError(c, err, "删除文件失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文件已删除"})
}
