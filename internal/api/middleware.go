package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

func accessLog(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("http request", kv...)
		case status >= http.StatusBadRequest:
			logger.Warn("http request", kv...)
		default:
			logger.Debug("http request", kv...)
		}
	}
}

func recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic serving request", "path", c.Request.URL.Path, "panic", r)
				abort(c, &Error{Status: http.StatusInternalServerError, Code: "internal", Message: "internal server error"})
			}
		}()
		c.Next()
	}
}
