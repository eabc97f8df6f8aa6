package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contextRequestID = "requestID"

// RequestLogger tags each request with an id and logs method, path, status
// and latency once the handler chain finishes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set(contextRequestID, requestID)
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		for _, ginErr := range c.Errors {
			fields = append(fields, zap.NamedError("handlerError", ginErr.Err))
		}

		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
		} else {
			log.Info("request", fields...)
		}
	}
}
