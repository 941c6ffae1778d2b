package router

import (
	"nubenet/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerChatRoutes(api *gin.RouterGroup) {
	chatGroup := authenticated(api, "/chat")

	chatGroup.GET("", handler.GetMessages)
	chatGroup.POST("", handler.SendMessage)
	chatGroup.POST("/:id/edit", handler.EditMessage)
	chatGroup.DELETE("/:id", handler.DeleteMessage)
}
