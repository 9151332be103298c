package middleware

import (
	"WikiStars/internal/pkg/logger"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// TraceMiddleware 透传或生成 TraceID，贯穿日志与下游调用
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		// 外部传入的 TraceID 限长，防止构造超长头污染日志
		if traceID == "" || len(traceID) > 64 {
			traceID = uuid.New().String()
		}

		c.Set(logger.TraceIDKey, traceID)
		ctx := context.WithValue(c.Request.Context(), logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(traceHeader, traceID)
		c.Next()
	}
}
