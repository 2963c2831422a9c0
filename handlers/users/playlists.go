package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"

	hc "github.com/tubeview/web-api/handlers/common"
	"github.com/tubeview/web-api/services/auth"
)

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type addVideoRequest struct {
	VideoID string `json:"videoId"`
}

// playlistID aborts with 404 on a malformed id, such a playlist cannot exist.
func playlistID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("playlistId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, hc.ErrorResponse{Message: "Playlist not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) listPlaylists(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	list, err := h.playlists.Playlists(c.Request.Context(), u.UserID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) createPlaylist(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		hc.BadRequest(c, "Playlist name is required")
		return
	}
	u := auth.GetUserFromContext(c)
	list, err := h.playlists.CreatePlaylist(c.Request.Context(), u.UserID, req.Name)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *Handler) getPlaylist(c *gin.Context) {
	pID, ok := playlistID(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	p, err := h.playlists.Playlist(c.Request.Context(), u.UserID, pID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deletePlaylist(c *gin.Context) {
	pID, ok := playlistID(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	list, err := h.playlists.DeletePlaylist(c.Request.Context(), u.UserID, pID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) addVideo(c *gin.Context) {
	pID, ok := playlistID(c)
	if !ok {
		return
	}
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VideoID == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	u := auth.GetUserFromContext(c)
	p, err := h.playlists.AddPlaylistVideo(c.Request.Context(), u.UserID, pID, req.VideoID)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) removeVideo(c *gin.Context) {
	pID, ok := playlistID(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	p, err := h.playlists.RemovePlaylistVideo(c.Request.Context(), u.UserID, pID, c.Param("videoId"))
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, p)
}
