package router

import (
	"nubenet/internal/handler"
	"nubenet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup) {
	adminGroup := authenticated(api, "/admin")
	adminGroup.Use(middleware.AdminCheck())

	adminGroup.GET("/users", handler.GetUserList)
	adminGroup.POST("/users/:id/ban", handler.BanUser)
	adminGroup.POST("/users/:id/unban", handler.UnbanUser)
	adminGroup.POST("/users/:id/role", handler.ChangeRole)
	adminGroup.DELETE("/users/:id", handler.DeleteUser)

	adminGroup.POST("/theme", handler.SetTheme)
	adminGroup.GET("/stats", handler.GetServerStats)
}
