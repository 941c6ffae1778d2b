package router

import (
	"nubenet/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerFileRoutes(api *gin.RouterGroup) {
	fileGroup := authenticated(api, "/files")

	fileGroup.GET("", handler.ListFiles)
	fileGroup.POST("", handler.UploadFile)
	fileGroup.GET("/:id/download", handler.DownloadFile)
	fileGroup.DELETE("/:id", handler.DeleteFile)
}
