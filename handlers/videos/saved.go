package videos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	hc "github.com/tubeview/web-api/handlers/common"
	"github.com/tubeview/web-api/services/auth"
)

type saveRequest struct {
	VideoID string `json:"videoId"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VideoID == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	u := auth.GetUserFromContext(c)
	list, err := h.saved.SaveVideo(c.Request.Context(), u.UserID, req.VideoID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) savedList(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	list, err := h.saved.SavedVideos(c.Request.Context(), u.UserID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) unsave(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	list, err := h.saved.RemoveSavedVideo(c.Request.Context(), u.UserID, param(c, "videoId"))
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}
