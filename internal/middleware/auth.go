package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"
	"nubenet/internal/service"
	"nubenet/internal/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity 每个请求一次构造的认证身份，由中间件写入、处理器读取
type Identity struct {
	UserID   uint
	Username string
	Role     model.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// GetIdentity 从请求上下文取出认证身份
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := val.(Identity)
	return ident, ok
}

// sessionToken 从 Cookie 或 Authorization 头提取会话令牌
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(consts.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ClearSessionCookie 销毁客户端会话 Cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(consts.SessionCookieName, "", -1, "/", "", false, true)
}

// SessionAuth 要求有效会话，并构造本次请求的 Identity
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要登录才能访问"})
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			ClearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "会话无效或已过期"})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

var (
	// statusCache 缓存用户状态，减少数据库查询
	// Key: userID (uint), Value: cachedStatus
	statusCache sync.Map
)

const statusCacheTTL = 1 * time.Minute

type cachedStatus struct {
	Status    model.Status
	ExpiresAt time.Time
}

// ClearUserStatusCache 清除指定用户的状态缓存（封禁/解封/删除后调用）
func ClearUserStatusCache(userID uint) {
	statusCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := service.RedisKey("auth", "user_status", strconv.FormatUint(uint64(userID), 10))
		_ = redisClient.Del(ctx, key).Err()
	}
}

// UserStatusCheck 每个请求重查账号状态：会话建立后账号仍可能被封禁。
// 封禁命中时销毁会话并拒绝请求。
func UserStatusCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}
		uid := ident.UserID

		var (
			currentStatus model.Status
			statusFound   bool
		)

		// 优先从 Redis 读取
		if redisClient := service.GetRedisClient(); redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := service.RedisKey("auth", "user_status", strconv.FormatUint(uint64(uid), 10))
			cachedStatusStr, err := redisClient.Get(ctx, key).Result()
			if err == nil && cachedStatusStr != "" {
				currentStatus = model.Status(cachedStatusStr)
				statusFound = true
				statusCache.Store(uid, cachedStatus{
					Status:    currentStatus,
					ExpiresAt: time.Now().Add(statusCacheTTL),
				})
			}
		}

		// Redis 未命中或不可用时，回退本地内存缓存
		if !statusFound {
			if val, ok := statusCache.Load(uid); ok {
				cached, typeOk := val.(cachedStatus)
				if typeOk {
					if time.Now().Before(cached.ExpiresAt) {
						currentStatus = cached.Status
						statusFound = true
					} else {
						statusCache.Delete(uid)
					}
				}
			}
		}

		// 如果缓存未命中或过期，查询数据库
		if !statusFound {
			var user model.User
			if err := db.DB.Select("status").First(&user, uid).Error; err != nil {
				ClearSessionCookie(c)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
				c.Abort()
				return
			}
			currentStatus = user.Status

			// 写入缓存
			statusCache.Store(uid, cachedStatus{
				Status:    currentStatus,
				ExpiresAt: time.Now().Add(statusCacheTTL),
			})

			if redisClient := service.GetRedisClient(); redisClient != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()

				key := service.RedisKey("auth", "user_status", strconv.FormatUint(uint64(uid), 10))
				_ = redisClient.Set(ctx, key, string(currentStatus), statusCacheTTL).Err()
			}
		}

		if currentStatus == model.StatusBanned {
			ClearSessionCookie(c)
			c.JSON(http.StatusForbidden, gin.H{"error": "账号已被封禁"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminCheck 要求管理员角色
func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok || !ident.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "需要管理员权限才能访问"})
			c.Abort()
			return
		}
		c.Next()
	}
}
