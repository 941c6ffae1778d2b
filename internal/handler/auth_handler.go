package handler

import (
	"net/http"

	"nubenet/internal/config"
	"nubenet/internal/consts"
	"nubenet/internal/middleware"
	"nubenet/internal/service"

	"github.com/gin-gonic/gin"
)

// setSessionCookie 下发 HttpOnly 会话 Cookie
func setSessionCookie(c *gin.Context, token string) {
	hours := config.Get().Session.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	c.SetCookie(consts.SessionCookieName, token, hours*3600, "/", "", false, true)
}

func Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	token, err := service.LoginUser(req.Username, req.Password)
	if err != nil {
		WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "登录成功",
	})
}

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	// 注册成功即自动登录
	token, err := service.RegisterUser(req.Username, req.Password)
	if err != nil {
		WriteServiceError(c, err, "注册失败，请稍后重试")
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "注册成功",
	})
}

// Logout 无条件销毁会话
func Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// ChangePassword 修改当前用户密码
func ChangePassword(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.ChangePassword(ident.UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		WriteServiceError(c, err, "修改密码失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "密码修改成功"})
}
