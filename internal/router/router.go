package router

import (
	"nubenet/internal/consts"
	"nubenet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	api := r.Group("/api")

	// 认证限流：在多个域路由中复用同一个实例，保持行为一致
	authLimiter := middleware.RateLimitMiddleware(consts.ConfigRateLimitAuthRPS, consts.ConfigRateLimitAuthBurst)

	registerPublicRoutes(api)
	registerAuthRoutes(api, authLimiter)
	registerFileRoutes(api)
	registerChatRoutes(api)
	registerToolsRoutes(api)
	registerAdminRoutes(api)
}

// authenticated 组合已登录用户路由组的公共守卫：会话 + 封禁复查
func authenticated(api *gin.RouterGroup, path string) *gin.RouterGroup {
	group := api.Group(path)
	group.Use(middleware.SessionAuth())
	group.Use(middleware.UserStatusCheck())
	return group
}
