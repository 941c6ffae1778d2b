package router

import (
	"nubenet/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerToolsRoutes(api *gin.RouterGroup) {
	toolsGroup := authenticated(api, "/tools")

	toolsGroup.GET("/notes", handler.ListNotes)
	toolsGroup.POST("/notes", handler.CreateNote)
	toolsGroup.DELETE("/notes/:id", handler.DeleteNote)

	toolsGroup.GET("/todo", handler.ListTasks)
	toolsGroup.POST("/todo", handler.CreateTask)
	toolsGroup.POST("/todo/:id/toggle", handler.ToggleTask)
	toolsGroup.DELETE("/todo/:id", handler.DeleteTask)

	toolsGroup.GET("/monitor", handler.GetMonitor)

	toolsGroup.GET("/downloader/categories", handler.GetDownloaderCategories)
	toolsGroup.POST("/downloader", handler.IngestMedia)
}
