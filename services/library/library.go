package library

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/youtube"
)

type VideoFetcher interface {
	VideoDetails(ctx context.Context, id string) (*youtube.VideoList, error)
}

// Library manages saved videos and playlists of a user.
type Library struct {
	store  libraryStore
	videos VideoFetcher
}

func New(pg *cs.PG, videos VideoFetcher) *Library {
	return &Library{
		store:  &pgLibraryStore{pg: pg},
		videos: videos,
	}
}

// SaveVideo snapshots the video metadata into the user's saved list and
// returns the updated list.
func (s *Library) SaveVideo(ctx context.Context, uID uuid.UUID, videoID string) ([]*models.SavedVideo, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, sv.Wrap(sv.ErrBadRequest, "Video ID is required")
	}
	saved, err := s.store.IsVideoSaved(ctx, uID, videoID)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, sv.Wrap(sv.ErrConflict, "Video already saved")
	}
	vl, err := s.videos.VideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(vl.Items) == 0 {
		return nil, sv.Wrap(sv.ErrNotFound, "Video not found")
	}
	sn := vl.Items[0].Snippet
	ok, err := s.store.AddSavedVideo(ctx, &models.SavedVideo{
		UserID:       uID,
		VideoID:      videoID,
		Title:        sn.Title,
		Thumbnail:    sn.Thumbnails.Best(),
		ChannelTitle: sn.ChannelTitle,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save video (id=%v)", videoID)
	}
	if !ok {
		// concurrent save of the same video won the race
		return nil, sv.Wrap(sv.ErrConflict, "Video already saved")
	}
	log.WithFields(log.Fields{
		"user_id":  uID,
		"video_id": videoID,
	}).Info("video saved")
	return s.store.GetSavedVideos(ctx, uID)
}

func (s *Library) SavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error) {
	return s.store.GetSavedVideos(ctx, uID)
}

// RemoveSavedVideo succeeds whether or not the video was saved.
func (s *Library) RemoveSavedVideo(ctx context.Context, uID uuid.UUID, videoID string) ([]*models.SavedVideo, error) {
	if err := s.store.RemoveSavedVideo(ctx, uID, videoID); err != nil {
		return nil, err
	}
	return s.store.GetSavedVideos(ctx, uID)
}

func (s *Library) CreatePlaylist(ctx context.Context, uID uuid.UUID, name string) ([]*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sv.Wrap(sv.ErrBadRequest, "Playlist name is required")
	}
	p, err := s.store.CreatePlaylist(ctx, uID, name)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id":     uID,
		"playlist_id": p.PlaylistID,
	}).Info("playlist created")
	return s.store.GetPlaylists(ctx, uID)
}

func (s *Library) Playlists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error) {
	return s.store.GetPlaylists(ctx, uID)
}

func (s *Library) Playlist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (*models.Playlist, error) {
	p, err := s.store.GetPlaylist(ctx, uID, pID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "Playlist not found")
	}
	return p, nil
}

func (s *Library) DeletePlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) ([]*models.Playlist, error) {
	ok, err := s.store.DeletePlaylist(ctx, uID, pID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, sv.Wrap(sv.ErrNotFound, "Playlist not found")
	}
	return s.store.GetPlaylists(ctx, uID)
}

func (s *Library) AddPlaylistVideo(ctx context.Context, uID uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, sv.Wrap(sv.ErrBadRequest, "Video ID is required")
	}
	if _, err := s.Playlist(ctx, uID, pID); err != nil {
		return nil, err
	}
	if err := s.store.AddPlaylistVideo(ctx, pID, videoID); err != nil {
		return nil, err
	}
	return s.Playlist(ctx, uID, pID)
}

func (s *Library) RemovePlaylistVideo(ctx context.Context, uID uuid.UUID, pID uuid.UUID, videoID string) (*models.Playlist, error) {
	if _, err := s.Playlist(ctx, uID, pID); err != nil {
		return nil, err
	}
	if err := s.store.RemovePlaylistVideo(ctx, pID, videoID); err != nil {
		return nil, err
	}
	return s.Playlist(ctx, uID, pID)
}
