package profile

import (
	"context"

	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

type profileStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
	GetPlaylists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error)
	GetSavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error)
}

type pgProfileStore struct {
	pg *cs.PG
}

func (s *pgProfileStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetUserByID(ctx, db, id)
}

func (s *pgProfileStore) UpdateUser(ctx context.Context, u *models.User) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.UpdateUserProfile(ctx, db, u)
}

func (s *pgProfileStore) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return false, err
	}
	return models.DeleteUser(ctx, db, id)
}

func (s *pgProfileStore) GetPlaylists(ctx context.Context, uID uuid.UUID) ([]*models.Playlist, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetPlaylists(ctx, db, uID)
}

func (s *pgProfileStore) GetSavedVideos(ctx context.Context, uID uuid.UUID) ([]*models.SavedVideo, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetSavedVideos(ctx, db, uID)
}
