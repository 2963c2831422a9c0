package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// SavedVideo is a snapshot of video metadata taken when the user saved it.
// It is never refreshed from the upstream API.
type SavedVideo struct {
	tableName struct{} `pg:"saved_video"`

	UserID       uuid.UUID `pg:"user_id,pk,type:uuid" json:"-"`
	VideoID      string    `pg:"video_id,pk" json:"videoId"`
	Title        string    `pg:"title,notnull,use_zero" json:"title"`
	Thumbnail    string    `pg:"thumbnail,notnull,use_zero" json:"thumbnail"`
	ChannelTitle string    `pg:"channel_title,notnull,use_zero" json:"channelTitle"`
	SavedAt      time.Time `pg:"saved_at,notnull" json:"savedAt"`
}

func IsVideoSaved(ctx context.Context, db pg.DBI, uID uuid.UUID, videoID string) (bool, error) {
	exists, err := db.Model((*SavedVideo)(nil)).
		Context(ctx).
		Where("user_id = ? AND video_id = ?", uID, videoID).
		Exists()
	if err != nil {
		return false, errors.Wrap(err, "failed to check saved video")
	}
	return exists, nil
}

// AddSavedVideo returns false if the pair (user, video) is already present.
func AddSavedVideo(ctx context.Context, db pg.DBI, sv *SavedVideo) (bool, error) {
	if sv.SavedAt.IsZero() {
		sv.SavedAt = time.Now()
	}
	res, err := db.Model(sv).
		Context(ctx).
		OnConflict("DO NOTHING").
		Insert()
	if err != nil {
		return false, errors.Wrap(err, "failed to insert saved video")
	}
	return res.RowsAffected() > 0, nil
}

func RemoveSavedVideo(ctx context.Context, db pg.DBI, uID uuid.UUID, videoID string) error {
	_, err := db.Model((*SavedVideo)(nil)).
		Context(ctx).
		Where("user_id = ? AND video_id = ?", uID, videoID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to remove saved video")
	}
	return nil
}

func GetSavedVideos(ctx context.Context, db pg.DBI, uID uuid.UUID) ([]*SavedVideo, error) {
	list := []*SavedVideo{}
	err := db.Model(&list).
		Context(ctx).
		Where("user_id = ?", uID).
		Order("saved_at ASC", "video_id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch saved videos")
	}
	return list, nil
}
