package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/youtube"
)

func respond(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	RespondError(c, err, "Server error")
	var res ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w.Code, res
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad request", sv.Wrap(sv.ErrBadRequest, "Video ID is required"), 400, "Video ID is required"},
		{"conflict", sv.Wrap(sv.ErrConflict, "Video already saved"), 400, "Video already saved"},
		{"not found", sv.Wrap(sv.ErrNotFound, "Video not found"), 404, "Video not found"},
		{"forbidden", sv.Wrap(sv.ErrForbidden, "nope"), 403, "nope"},
		{"wrapped not found", errors.WithMessage(sv.Wrap(sv.ErrNotFound, "Playlist not found"), "ctx"), 404, "Playlist not found"},
		{"no db", sv.ErrNoDB, 500, "Server error"},
		{"unknown", errors.New("boom"), 500, "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := respond(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, res.Message)
			assert.Nil(t, res.Error)
		})
	}
}

func TestRespondError_Upstream(t *testing.T) {
	err := errors.WithMessage(&youtube.Error{StatusCode: 403, Message: "quota exceeded"}, "failed to fetch")

	status, res := respond(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server error", res.Message)
	require.NotNil(t, res.Error)
	assert.Equal(t, 403, res.Error.Code)
	assert.Equal(t, "quota exceeded", res.Error.Message)
}
