package users

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	hc "github.com/tubeview/web-api/handlers/common"
	"github.com/tubeview/web-api/services/auth"
	"github.com/tubeview/web-api/services/profile"
)

func (h *Handler) getProfile(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	doc, err := h.profile.Get(c.Request.Context(), u.UserID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var upd profile.Update
	if err := c.ShouldBindJSON(&upd); err != nil && !errors.Is(err, io.EOF) {
		hc.BadRequest(c, "Invalid request body")
		return
	}
	u := auth.GetUserFromContext(c)
	doc, err := h.profile.Update(c.Request.Context(), u.UserID, upd)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) deleteProfile(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	if err := h.profile.Delete(c.Request.Context(), u.UserID); err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}
