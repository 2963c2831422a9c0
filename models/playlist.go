package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type Playlist struct {
	tableName struct{} `pg:"playlist"`

	PlaylistID uuid.UUID `pg:"playlist_id,pk,type:uuid" json:"id"`
	UserID     uuid.UUID `pg:"user_id,notnull,type:uuid" json:"-"`
	Name       string    `pg:"name,notnull" json:"name"`
	CreatedAt  time.Time `pg:"created_at,notnull" json:"createdAt"`

	Videos []*PlaylistVideo `pg:"rel:has-many,fk:playlist_id" json:"videos"`
}

// PlaylistVideo references a video by id only, no metadata is cached.
type PlaylistVideo struct {
	tableName struct{} `pg:"playlist_video"`

	PlaylistID uuid.UUID `pg:"playlist_id,pk,type:uuid" json:"-"`
	VideoID    string    `pg:"video_id,pk" json:"videoId"`
	AddedAt    time.Time `pg:"added_at,notnull" json:"addedAt"`
}

func orderVideos(q *orm.Query) (*orm.Query, error) {
	return q.Order("added_at ASC", "video_id ASC"), nil
}

func CreatePlaylist(ctx context.Context, db pg.DBI, uID uuid.UUID, name string) (*Playlist, error) {
	p := &Playlist{
		PlaylistID: uuid.NewV4(),
		UserID:     uID,
		Name:       name,
		CreatedAt:  time.Now(),
		Videos:     []*PlaylistVideo{},
	}
	_, err := db.Model(p).
		Context(ctx).
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create playlist")
	}
	return p, nil
}

func GetPlaylists(ctx context.Context, db pg.DBI, uID uuid.UUID) ([]*Playlist, error) {
	list := []*Playlist{}
	err := db.Model(&list).
		Context(ctx).
		Where("playlist.user_id = ?", uID).
		Relation("Videos", orderVideos).
		Order("playlist.created_at ASC", "playlist.playlist_id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch playlists")
	}
	for _, p := range list {
		if p.Videos == nil {
			p.Videos = []*PlaylistVideo{}
		}
	}
	return list, nil
}

// GetPlaylist returns nil if the playlist does not exist or belongs to another user.
func GetPlaylist(ctx context.Context, db pg.DBI, uID uuid.UUID, pID uuid.UUID) (*Playlist, error) {
	p := &Playlist{}
	err := db.Model(p).
		Context(ctx).
		Where("playlist.playlist_id = ?", pID).
		Where("playlist.user_id = ?", uID).
		Relation("Videos", orderVideos).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch playlist")
	}
	if p.Videos == nil {
		p.Videos = []*PlaylistVideo{}
	}
	return p, nil
}

func DeletePlaylist(ctx context.Context, db pg.DBI, uID uuid.UUID, pID uuid.UUID) (bool, error) {
	res, err := db.Model((*Playlist)(nil)).
		Context(ctx).
		Where("playlist_id = ? AND user_id = ?", pID, uID).
		Delete()
	if err != nil {
		return false, errors.Wrap(err, "failed to delete playlist")
	}
	return res.RowsAffected() > 0, nil
}

// AddPlaylistVideo is a no-op when the video is already in the playlist.
func AddPlaylistVideo(ctx context.Context, db pg.DBI, pID uuid.UUID, videoID string) error {
	pv := &PlaylistVideo{
		PlaylistID: pID,
		VideoID:    videoID,
		AddedAt:    time.Now(),
	}
	_, err := db.Model(pv).
		Context(ctx).
		OnConflict("DO NOTHING").
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to add video to playlist")
	}
	return nil
}

func RemovePlaylistVideo(ctx context.Context, db pg.DBI, pID uuid.UUID, videoID string) error {
	_, err := db.Model((*PlaylistVideo)(nil)).
		Context(ctx).
		Where("playlist_id = ? AND video_id = ?", pID, videoID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to remove video from playlist")
	}
	return nil
}
