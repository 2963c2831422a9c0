package library

import (
	"context"

	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

type libraryStore interface {
	IsVideoSaved(ctx context.Context, uID uuid.UUID, videoID string) (bool, error)
	AddSavedVideo(ctx context.Context, v *models.SavedVideo) (bool, error)
	RemoveSavedVideo(ctx context.Context, uID uuid.UUID, videoID string) error
	GetSavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error)

	CreatePlaylist(ctx context.Context, uID uuid.UUID, name string) (*models.Playlist, error)
	GetPlaylists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error)
	GetPlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (bool, error)
	AddPlaylistVideo(ctx context.Context, pID uuid.UUID, videoID string) error
	RemovePlaylistVideo(ctx context.Context, pID uuid.UUID, videoID string) error
}

type pgLibraryStore struct {
	pg *cs.PG
}

func (s *pgLibraryStore) IsVideoSaved(ctx context.Context, uID uuid.UUID, videoID string) (bool, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return false, err
	}
	return models.IsVideoSaved(ctx, db, uID, videoID)
}

func (s *pgLibraryStore) AddSavedVideo(ctx context.Context, v *models.SavedVideo) (bool, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return false, err
	}
	return models.AddSavedVideo(ctx, db, v)
}

func (s *pgLibraryStore) RemoveSavedVideo(ctx context.Context, uID uuid.UUID, videoID string) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.RemoveSavedVideo(ctx, db, uID, videoID)
}

func (s *pgLibraryStore) GetSavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetSavedVideos(ctx, db, uID)
}

func (s *pgLibraryStore) CreatePlaylist(ctx context.Context, uID uuid.UUID, name string) (*models.Playlist, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.CreatePlaylist(ctx, db, uID, name)
}

func (s *pgLibraryStore) GetPlaylists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetPlaylists(ctx, db, uID)
}

func (s *pgLibraryStore) GetPlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (*models.Playlist, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetPlaylist(ctx, db, uID, pID)
}

func (s *pgLibraryStore) DeletePlaylist(ctx context.Context, uID uuid.UUID, pID uuid.UUID) (bool, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return false, err
	}
	return models.DeletePlaylist(ctx, db, uID, pID)
}

func (s *pgLibraryStore) AddPlaylistVideo(ctx context.Context, pID uuid.UUID, videoID string) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.AddPlaylistVideo(ctx, db, pID, videoID)
}

func (s *pgLibraryStore) RemovePlaylistVideo(ctx context.Context, pID uuid.UUID, videoID string) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.RemovePlaylistVideo(ctx, db, pID, videoID)
}
