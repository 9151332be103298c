package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// 请求与响应体的留痕上限，图片上传等二进制请求不留痕
const auditBodyLimit = 16384

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < auditBodyLimit {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBodyLog := "[binary omitted]"
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			var reqBody []byte
			if c.Request.Body != nil {
				reqBody, _ = io.ReadAll(c.Request.Body)
				c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
			}
			if len(reqBody) > auditBodyLimit {
				reqBody = reqBody[:auditBodyLimit]
			}
			reqBodyLog = string(reqBody)
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", reqBodyLog),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", w.body.String()),
		)
	}
}
