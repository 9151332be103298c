package middleware

import (
	"WikiStars/internal/pkg/redis"
	"WikiStars/internal/pkg/response"
	"WikiStars/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// extractBearer 取出 Authorization 头里的 Bearer Token，没有则返回空串
func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 登出后的 Token 签名会进入黑名单
		value, err := redis.GetValue(c.Request.Context(), signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
