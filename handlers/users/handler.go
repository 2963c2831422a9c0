package users

import (
	"context"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"

	"github.com/tubeview/web-api/models"
	"github.com/tubeview/web-api/services/auth"
	"github.com/tubeview/web-api/services/profile"
)

type Profile interface {
	Get(ctx context.Context, uID uuid.UUID) (*profile.Document, error)
	Update(ctx context.Context, uID uuid.UUID, upd profile.Update) (*profile.Document, error)
	Delete(ctx context.Context, uID uuid.UUID) error
}

type Playlists interface {
	CreatePlaylist(ctx context.Context, uID uuid.UUID, name string) ([]*models.Playlist, error)
	Playlists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error)
	Playlist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) ([]*models.Playlist, error)
	AddPlaylistVideo(ctx context.Context, uID uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error)
	RemovePlaylistVideo(ctx context.Context, uID uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error)
}

type Handler struct {
	profile   Profile
	playlists Playlists
}

func RegisterHandler(r *gin.Engine, p Profile, pl Playlists) {
	h := &Handler{
		profile:   p,
		playlists: pl,
	}
	gr := r.Group("/users")
	gr.Use(auth.HasAuth)
	gr.GET("/profile", h.getProfile)
	gr.PUT("/profile", h.updateProfile)
	gr.DELETE("/profile", h.deleteProfile)

	gr.GET("/playlists", h.listPlaylists)
	gr.POST("/playlists", h.createPlaylist)
	gr.GET("/playlists/:playlistId", h.getPlaylist)
	gr.DELETE("/playlists/:playlistId", h.deletePlaylist)
	gr.POST("/playlists/:playlistId/videos", h.addVideo)
	gr.DELETE("/playlists/:playlistId/videos/:videoId", h.removeVideo)
}
