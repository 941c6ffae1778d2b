package handler

import (
	"net/http"
	"strconv"

	"nubenet/internal/middleware"
	"nubenet/internal/model"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// GetUserList 获取全部用户（管理面板）
func GetUserList(c *gin.Context) {
	users, err := service.ListUsers()
	if err != nil {
		WriteServiceError(c, err, "获取用户列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetTheme 获取当前站点主题（公开）
func GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": service.GetCurrentTheme()})
}

// SetTheme 设置站点主题，仅允许固定集合内的值
func SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.SetTheme(req.Theme); err != nil {
		WriteServiceError(c, err, "设置主题失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "主题已更新"})
}

func targetUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return 0, false
	}
	return uint(id), true
}

// BanUser 封禁用户
func BanUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := service.BanUser(id); err != nil {
		WriteServiceError(c, err, "封禁用户失败")
		return
	}

	// 封禁立即生效：已建立的会话在下一次请求被拦截
	middleware.ClearUserStatusCache(id)
	c.JSON(http.StatusOK, gin.H{"message": "用户已封禁"})
}

// UnbanUser 解封用户
func UnbanUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := service.UnbanUser(id); err != nil {
		WriteServiceError(c, err, "解封用户失败")
		return
	}

	middleware.ClearUserStatusCache(id)
	c.JSON(http.StatusOK, gin.H{"message": "用户已解封"})
}

// ChangeRole 修改用户角色
func ChangeRole(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.ChangeRole(id, model.Role(req.Role)); err != nil {
		WriteServiceError(c, err, "修改角色失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "角色已更新"})
}

// DeleteUser 删除用户及其文件对象
func DeleteUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := service.DeleteUser(c.Request.Context(), id); err != nil {
		WriteServiceError(c, err, "删除用户失败")
		return
	}

	middleware.ClearUserStatusCache(id)
	c.JSON(http.StatusOK, gin.H{"message": "用户已删除"})
}

// GetServerStats 获取后台仪表盘统计数据
func GetServerStats(c *gin.Context) {
	stats, err := service.AdminGetServerStats()
	if err != nil {
		WriteServiceError(c, err, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, stats)
}
