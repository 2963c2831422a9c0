package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	RequestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
)

// RequestID reuses a well-formed incoming request id or generates a new one
// and echoes it back.
func RequestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(requestIDContextKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// Logger writes one line per request. Query strings are omitted.
func Logger(c *gin.Context) {
	start := time.Now()
	c.Next()
	status := c.Writer.Status()
	l := log.WithFields(log.Fields{
		"request_id": GetRequestID(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     status,
		"latency":    time.Since(start).String(),
		"client_ip":  c.ClientIP(),
	})
	switch {
	case status >= http.StatusInternalServerError:
		l.Error("request failed")
	case status >= http.StatusBadRequest:
		l.Warn("request rejected")
	default:
		l.Info("request served")
	}
}

// Recovery turns a panic into a JSON 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.WithFields(log.Fields{
			"request_id": GetRequestID(c),
			"panic":      err,
		}).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	})
}

// NewEngine returns a gin engine with request id, logging and recovery.
// Unknown routes and methods answer with a JSON message.
func NewEngine() *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = true
	r.Use(RequestID, Logger, Recovery())
	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	return r
}
