package videos

import (
	"context"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"

	"github.com/tubeview/web-api/models"
	"github.com/tubeview/web-api/services/auth"
	"github.com/tubeview/web-api/services/view"
	"github.com/tubeview/web-api/services/youtube"
)

type VideoAPI interface {
	Trending(ctx context.Context, p youtube.TrendingParams) (*youtube.VideoList, error)
	Search(ctx context.Context, p youtube.SearchParams) (*youtube.SearchList, error)
	VideoDetails(ctx context.Context, id string) (*youtube.VideoList, error)
	ChannelDetails(ctx context.Context, id string) (*youtube.ChannelList, error)
	RelatedVideos(ctx context.Context, videoID string, max int) (*youtube.SearchList, error)
	Comments(ctx context.Context, videoID string, p youtube.CommentsParams) (*youtube.CommentThreadList, error)
}

type Viewer interface {
	Get(ctx context.Context, id string) (*view.Model, error)
}

type SavedVideos interface {
	SaveVideo(ctx context.Context, uID uuid.UUID, videoID string) ([]*models.SavedVideo, error)
	SavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error)
	RemoveSavedVideo(ctx context.Context, uID uuid.UUID, videoID string) ([]*models.SavedVideo, error)
}

type Handler struct {
	api    VideoAPI
	viewer Viewer
	saved  SavedVideos
}

func RegisterHandler(r *gin.Engine, api VideoAPI, v Viewer, saved SavedVideos) {
	h := &Handler{
		api:    api,
		viewer: v,
		saved:  saved,
	}
	gr := r.Group("/videos")
	gr.GET("/trending", h.trending)
	gr.GET("/search", h.search)
	// bare forms reach the handlers with an empty id
	for _, rt := range []struct {
		path string
		h    gin.HandlerFunc
	}{
		{"/video/", h.video},
		{"/view/", h.view},
		{"/channel/", h.channel},
		{"/related/", h.related},
		{"/comments/", h.comments},
	} {
		gr.GET(rt.path, rt.h)
	}
	gr.GET("/video/:id", h.video)
	gr.GET("/view/:id", h.view)
	gr.GET("/channel/:channelId", h.channel)
	gr.GET("/related/:videoId", h.related)
	gr.GET("/comments/:videoId", h.comments)

	gr.POST("/save", auth.HasAuth, h.save)
	gr.GET("/saved", auth.HasAuth, h.savedList)
	gr.DELETE("/saved/:videoId", auth.HasAuth, h.unsave)
}
