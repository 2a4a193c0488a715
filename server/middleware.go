// SPDX-License-Identifier: MIT

package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/dstoolbox/metrics"
)

const (
	headerRequestID = "X-Request-ID"
	keyLogger       = "dstoolbox.logger"
)

// requestContext assigns a request id (reusing the client's X-Request-ID)
// and stores a logger carrying it.
func requestContext(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set(keyLogger, base.With(slog.String("request_id", id)))
		c.Next()
	}
}

// requestLogger returns the logger set by requestContext.
func requestLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(keyLogger); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// observe logs every request and records it in the HTTP metrics.
func observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveRequest(c.FullPath(), status, d)
		requestLogger(c).Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", d))
	}
}
