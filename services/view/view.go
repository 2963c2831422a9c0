package view

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/youtube"
)

type VideoSource interface {
	VideoDetails(ctx context.Context, id string) (*youtube.VideoList, error)
	ChannelDetails(ctx context.Context, id string) (*youtube.ChannelList, error)
	RelatedVideos(ctx context.Context, videoID string, max int) (*youtube.SearchList, error)
}

// Model is everything the video page needs. It is built per request and never stored.
type Model struct {
	Video         youtube.Video          `json:"video"`
	Channel       youtube.Channel        `json:"channel"`
	RelatedVideos []youtube.SearchResult `json:"relatedVideos"`
}

type Viewer struct {
	src VideoSource
}

func New(src VideoSource) *Viewer {
	return &Viewer{src: src}
}

func (s *Viewer) Get(ctx context.Context, id string) (*Model, error) {
	vl, err := s.src.VideoDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(vl.Items) == 0 {
		return nil, sv.Wrap(sv.ErrNotFound, "Video not found")
	}
	video := vl.Items[0]
	channelID := video.Snippet.ChannelID

	var (
		cl *youtube.ChannelList
		rl *youtube.SearchList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cl, err = s.src.ChannelDetails(gctx, channelID)
		return
	})
	g.Go(func() (err error) {
		rl, err = s.src.RelatedVideos(gctx, id, youtube.DefaultRelatedMaxResults)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WithMessagef(err, "failed to assemble view (id=%v)", id)
	}
	if len(cl.Items) == 0 {
		return nil, sv.Wrap(sv.ErrNotFound, "Channel not found")
	}

	related := rl.Items
	if related == nil {
		related = []youtube.SearchResult{}
	}
	log.WithFields(log.Fields{
		"video_id":   id,
		"channel_id": channelID,
		"related":    len(related),
	}).Debug("video view assembled")

	return &Model{
		Video:         video,
		Channel:       cl.Items[0],
		RelatedVideos: related,
	}, nil
}
