package handler

import (
	"net/http"
	"strconv"

	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// SendMessage 发送聊天消息
func SendMessage(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if _, err := service.SendMessage(req.Message, ident.UserID); err != nil {
		WriteServiceError(c, err, "发送消息失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMessages 轮询拉取最近 50 条消息
func GetMessages(c *gin.Context) {
	messages, err := service.ListMessages()
	if err != nil {
		WriteServiceError(c, err, "获取消息失败")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// EditMessage 编辑消息（仅管理员）
func EditMessage(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的消息ID"})
		return
	}

	var req struct {
		NewText string `json:"new_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.EditMessage(uint(id), req.NewText, ident.Role); err != nil {
		WriteServiceError(c, err, "编辑消息失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage 删除消息（仅管理员）
func DeleteMessage(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的消息ID"})
		return
	}

	if err := service.DeleteMessage(uint(id), ident.Role); err != nil {
		WriteServiceError(c, err, "删除消息失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
