package middleware

import (
	"WikiStars/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
// 角色集合在构造时固化为查找表，请求路径上不再遍历
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	required := make(map[string]struct{}, len(requiredRoles))
	for _, name := range requiredRoles {
		required[name] = struct{}{}
	}

	return func(c *gin.Context) {
		hasPermission := false
		for _, userRole := range c.GetStringSlice("roles") {
			if _, ok := required[userRole]; ok {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
