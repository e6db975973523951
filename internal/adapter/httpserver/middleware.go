package httpserver

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lycosidae/orchestrator/internal/impls"
)

const (
	secretHeader    = "X-Orchestrator-Secret"
	requestIDHeader = "X-Request-ID"
)

func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(secretHeader)), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Status: statusError,
				Error:  "unauthorized",
			})
			return
		}
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger impls.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		logger.Info("%s %s -> %d (%s) [%s]", method, path, status, latency, c.GetString("request_id"))
	}
}
