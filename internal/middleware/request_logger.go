package middleware

import (
	"elearning_backend/internal/util"
	"elearning_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger 为每个请求分配请求ID并记录访问日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(util.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(util.RequestIDKey, requestID)
		c.Header(util.RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Log.Info("Request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
