package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type Comment struct {
	tableName struct{} `pg:"comment"`

	CommentID  uuid.UUID  `pg:"comment_id,pk,type:uuid" json:"id"`
	VideoID    string     `pg:"video_id,notnull" json:"videoId"`
	ParentID   *uuid.UUID `pg:"parent_id,type:uuid" json:"parentId,omitempty"`
	UserID     uuid.UUID  `pg:"user_id,notnull,type:uuid" json:"userId"`
	Username   string     `pg:"username,notnull,use_zero" json:"username"`
	UserAvatar string     `pg:"user_avatar,notnull,use_zero" json:"userAvatar"`
	Text       string     `pg:"text,notnull" json:"text"`
	Likes      int        `pg:"likes,notnull,use_zero" json:"likes"`
	Dislikes   int        `pg:"dislikes,notnull,use_zero" json:"dislikes"`
	CreatedAt  time.Time  `pg:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time  `pg:"updated_at,notnull" json:"updatedAt"`

	Liked    bool       `pg:"-" json:"liked"`
	Disliked bool       `pg:"-" json:"disliked"`
	Replies  []*Comment `pg:"-" json:"replies,omitempty"`
}

type ReactionKind string

const (
	ReactionNone    ReactionKind = ""
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

type CommentReaction struct {
	tableName struct{} `pg:"comment_reaction"`

	CommentID uuid.UUID    `pg:"comment_id,pk,type:uuid"`
	UserID    uuid.UUID    `pg:"user_id,pk,type:uuid"`
	Kind      ReactionKind `pg:"kind,notnull"`
	CreatedAt time.Time    `pg:"created_at,notnull"`
}

// ReactionTransition computes the counter deltas for moving a user's reaction
// from prev to next. Likes and dislikes are mutually exclusive per user and
// repeating the current reaction changes nothing.
func ReactionTransition(prev, next ReactionKind) (likes, dislikes int) {
	if prev == next {
		return 0, 0
	}
	switch prev {
	case ReactionLike:
		likes--
	case ReactionDislike:
		dislikes--
	}
	switch next {
	case ReactionLike:
		likes++
	case ReactionDislike:
		dislikes++
	}
	return
}

// ApplyReactionFlags sets Liked/Disliked from the viewer's reaction.
func (c *Comment) ApplyReactionFlags(k ReactionKind) {
	c.Liked = k == ReactionLike
	c.Disliked = k == ReactionDislike
}

func CreateComment(ctx context.Context, db pg.DBI, c *Comment) error {
	now := time.Now()
	c.CommentID = uuid.NewV4()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := db.Model(c).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to create comment")
	}
	return nil
}

func GetComment(ctx context.Context, db pg.DBI, id uuid.UUID) (*Comment, error) {
	c := &Comment{}
	err := db.Model(c).
		Context(ctx).
		Where("comment_id = ?", id).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch comment")
	}
	return c, nil
}

// GetVideoComments returns every comment of the video, replies included,
// oldest first.
func GetVideoComments(ctx context.Context, db pg.DBI, videoID string) ([]*Comment, error) {
	list := []*Comment{}
	err := db.Model(&list).
		Context(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC", "comment_id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch comments")
	}
	return list, nil
}

// GetCommentReplies returns replies of the comment oldest first.
func GetCommentReplies(ctx context.Context, db pg.DBI, parentID uuid.UUID) ([]*Comment, error) {
	list := []*Comment{}
	err := db.Model(&list).
		Context(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC", "comment_id ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch replies")
	}
	return list, nil
}

func UpdateCommentText(ctx context.Context, db pg.DBI, c *Comment) error {
	c.UpdatedAt = time.Now()
	_, err := db.Model(c).
		Context(ctx).
		WherePK().
		Column("text", "updated_at").
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update comment")
	}
	return nil
}

// DeleteComment removes the comment, its replies and reactions cascade.
func DeleteComment(ctx context.Context, db pg.DBI, id uuid.UUID) error {
	_, err := db.Model((*Comment)(nil)).
		Context(ctx).
		Where("comment_id = ?", id).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}
	return nil
}

// GetUserReactions maps comment id to the user's reaction for the given comments.
func GetUserReactions(ctx context.Context, db pg.DBI, uID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]ReactionKind, error) {
	res := map[uuid.UUID]ReactionKind{}
	if len(ids) == 0 {
		return res, nil
	}
	var list []*CommentReaction
	err := db.Model(&list).
		Context(ctx).
		Where("user_id = ?", uID).
		Where("comment_id IN (?)", pg.In(ids)).
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch reactions")
	}
	for _, r := range list {
		res[r.CommentID] = r.Kind
	}
	return res, nil
}

// SetCommentReaction moves the user's reaction on the comment to next
// (ReactionNone clears it) and adjusts the counters in one transaction.
// It returns nil if the comment does not exist.
func SetCommentReaction(ctx context.Context, db *pg.DB, commentID uuid.UUID, uID uuid.UUID, next ReactionKind) (*Comment, error) {
	var result *Comment
	err := db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		c := &Comment{}
		err := tx.Model(c).
			Context(ctx).
			Where("comment_id = ?", commentID).
			For("UPDATE").
			Select()
		if errors.Is(err, pg.ErrNoRows) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock comment")
		}

		r := &CommentReaction{}
		err = tx.Model(r).
			Context(ctx).
			Where("comment_id = ? AND user_id = ?", commentID, uID).
			Select()
		if err != nil && !errors.Is(err, pg.ErrNoRows) {
			return errors.Wrap(err, "failed to fetch reaction")
		}
		prev := ReactionNone
		if err == nil {
			prev = r.Kind
		}

		dl, dd := ReactionTransition(prev, next)
		if dl == 0 && dd == 0 {
			c.ApplyReactionFlags(prev)
			result = c
			return nil
		}

		if next == ReactionNone {
			_, err = tx.Model((*CommentReaction)(nil)).
				Context(ctx).
				Where("comment_id = ? AND user_id = ?", commentID, uID).
				Delete()
		} else {
			_, err = tx.Model(&CommentReaction{
				CommentID: commentID,
				UserID:    uID,
				Kind:      next,
				CreatedAt: time.Now(),
			}).
				Context(ctx).
				OnConflict("(comment_id, user_id) DO UPDATE").
				Set("kind = EXCLUDED.kind, created_at = EXCLUDED.created_at").
				Insert()
		}
		if err != nil {
			return errors.Wrap(err, "failed to store reaction")
		}

		c.Likes += dl
		c.Dislikes += dd
		_, err = tx.Model(c).
			Context(ctx).
			WherePK().
			Column("likes", "dislikes").
			Update()
		if err != nil {
			return errors.Wrap(err, "failed to update comment counters")
		}
		c.ApplyReactionFlags(next)
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
