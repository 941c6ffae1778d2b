package handler

import (
	"net/http"
	"strconv"

	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTasks 列出当前用户的待办
func ListTasks(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	tasks, err := service.ListTasks(ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "获取待办失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask 创建待办
func CreateTask(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	task, err := service.CreateTask(req.Content, ident.UserID)
	if err != nil {
		WriteServiceError(c, err, "创建待办失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task":    task,
		"message": "待办已创建",
	})
}

// ToggleTask 翻转待办完成状态（仅所有者）
func ToggleTask(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的待办ID"})
		return
	}

	if err := service.ToggleTask(uint(id), ident.UserID); err != nil {
		WriteServiceError(c, err, "更新待办失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTask 删除待办（仅所有者）
func DeleteTask(c *gin.Context) {
	ident, _ := middleware.GetIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的待办ID"})
		return
	}

	if err := service.DeleteTask(uint(id), ident.UserID); err != nil {
		WriteServiceError(c, err, "删除待办失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "待办已删除"})
}
