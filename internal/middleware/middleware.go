// Package middleware provides request logging and admin auth middleware.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/prestigio-api/internal/auth"
	"github.com/gravadigital/prestigio-api/internal/response"
)

// RequestLogger returns a middleware function that logs request details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := log.Info
		if status >= 400 {
			logLevel = log.Error
		} else if status >= 300 {
			logLevel = log.Warn
		}

		logLevel("Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"remote_addr", c.ClientIP(),
		)
	}
}

// RequireAdmin returns a middleware that rejects requests without a valid
// admin session token. With an empty secret the whole check is disabled,
// matching the original wide-open localhost admin panel.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.UnauthorizedError(c, "Missing bearer token")
			c.Abort()
			return
		}

		if err := auth.VerifyToken(secret, tokenString); err != nil {
			response.UnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// NoRoute is the fallback handler for unknown paths
func NoRoute(c *gin.Context) {
	response.ErrorResponseWithMessage(c, http.StatusNotFound, "Not found")
}
