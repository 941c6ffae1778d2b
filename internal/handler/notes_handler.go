package handler

import (
	"net/http"
	"strconv"

	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// ListNotes 列出当前用户的笔记
func ListNotes(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	notes, err := service.ListNotes(ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "获取笔记失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// CreateNote 创建笔记
func CreateNote(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		IsPublic bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	note, err := service.CreateNote(req.Title, req.Content, req.IsPublic, ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "创建笔记失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"note":    note,
		"message": "笔记已创建",
	})
}

// DeleteNote 删除笔记（所有者或管理员）
func DeleteNote(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的笔记ID"})
		return
	}

	if err := service.DeleteNote(uint(id), ident.UserID, ident.Role); err != nil {
		WriteServiceError(c, err, "删除笔记失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "笔记已删除"})
}
