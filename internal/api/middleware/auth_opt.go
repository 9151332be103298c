package middleware

import (
	"WikiStars/internal/pkg/security"
	"context"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权，公共读接口用它区分游客和登录用户
// 解析成功注入 UID，Token 缺失或无效时 UID 为 0，不拦截请求
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString != "" {
			if claims, err := security.ValidateToken(tokenString); err == nil {
				c.Set("user_id", claims.UserID)
				ctx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
				c.Request = c.Request.WithContext(ctx)
				c.Next()
				return
			}
		}

		c.Set("user_id", uint64(0))
		c.Next()
	}
}
