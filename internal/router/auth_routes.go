package router

import (
	"nubenet/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	api.POST("/login", authLimiter, handler.Login)
	api.POST("/register", authLimiter, handler.Register)
	api.POST("/logout", handler.Logout)

	userGroup := authenticated(api, "/user")
	userGroup.PATCH("/password", handler.ChangePassword)
}
