package profile

import (
	"context"
	"strings"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

// Document is the user as returned to its owner, nested collections included.
type Document struct {
	*models.User
	Playlists   []*models.Playlist   `json:"playlists"`
	SavedVideos []*models.SavedVideo `json:"savedVideos"`
}

type Update struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Profile struct {
	store profileStore
}

func New(pg *cs.PG) *Profile {
	return &Profile{
		store: &pgProfileStore{pg: pg},
	}
}

func (s *Profile) Get(ctx context.Context, uID uuid.UUID) (*Document, error) {
	u, err := s.store.GetUser(ctx, uID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "User not found")
	}
	return s.document(ctx, u)
}

// Update applies only the non-empty fields of upd.
func (s *Profile) Update(ctx context.Context, uID uuid.UUID, upd Update) (*Document, error) {
	u, err := s.store.GetUser(ctx, uID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "User not found")
	}
	if v := strings.TrimSpace(upd.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(upd.Avatar); v != "" {
		u.Avatar = v
	}
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.document(ctx, u)
}

// Delete removes the account together with everything it owns.
func (s *Profile) Delete(ctx context.Context, uID uuid.UUID) error {
	ok, err := s.store.DeleteUser(ctx, uID)
	if err != nil {
		return err
	}
	if !ok {
		return sv.Wrap(sv.ErrNotFound, "User not found")
	}
	log.WithField("user_id", uID).Info("user deleted")
	return nil
}

func (s *Profile) document(ctx context.Context, u *models.User) (*Document, error) {
	pl, err := s.store.GetPlaylists(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	svs, err := s.store.GetSavedVideos(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	return &Document{
		User:        u,
		Playlists:   pl,
		SavedVideos: svs,
	}, nil
}
