package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/web"
	"github.com/tubeview/web-api/services/youtube"
)

type UpstreamError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string         `json:"message"`
	Error   *UpstreamError `json:"error,omitempty"`
}

// StatusOf maps an error to the HTTP status returned to the client.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, sv.ErrBadRequest), errors.Is(err, sv.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, sv.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sv.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as JSON. Errors carrying a client message are
// returned as is, everything else gets fallback and is logged.
func RespondError(c *gin.Context, err error, fallback string) {
	status := StatusOf(err)
	if msg, ok := sv.Message(err); ok && status != http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, ErrorResponse{Message: msg})
		return
	}
	res := ErrorResponse{Message: fallback}
	var ue *youtube.Error
	if errors.As(err, &ue) {
		res.Error = &UpstreamError{Code: ue.StatusCode, Message: ue.Message}
	}
	log.WithError(err).
		WithField("request_id", web.GetRequestID(c)).
		WithField("path", c.Request.URL.Path).
		Error(fallback)
	c.AbortWithStatusJSON(http.StatusInternalServerError, res)
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: msg})
}
