package comment

import (
	"context"
	"strings"
	"unicode/utf8"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

const maxTextLength = 5000

type Comments struct {
	store commentStore
}

func New(pg *cs.PG) *Comments {
	return &Comments{
		store: &pgCommentStore{pg: pg},
	}
}

// List returns top-level comments of the video newest first, each carrying
// its replies oldest first. Reaction flags are filled for viewer when set.
func (s *Comments) List(ctx context.Context, videoID string, viewer *uuid.UUID) ([]*models.Comment, error) {
	all, err := s.store.GetVideoComments(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		if err := s.applyFlags(ctx, *viewer, all); err != nil {
			return nil, err
		}
	}
	return thread(all), nil
}

func (s *Comments) applyFlags(ctx context.Context, uID uuid.UUID, list []*models.Comment) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.CommentID)
	}
	rs, err := s.store.GetUserReactions(ctx, uID, ids)
	if err != nil {
		return err
	}
	for _, c := range list {
		c.ApplyReactionFlags(rs[c.CommentID])
	}
	return nil
}

// decorate fills viewer flags and, for top-level comments, the replies so
// the comment can replace its listed copy as a whole.
func (s *Comments) decorate(ctx context.Context, uID uuid.UUID, c *models.Comment) (*models.Comment, error) {
	list := []*models.Comment{c}
	if c.ParentID == nil {
		rs, err := s.store.GetReplies(ctx, c.CommentID)
		if err != nil {
			return nil, err
		}
		c.Replies = rs
		list = append(list, rs...)
	}
	if err := s.applyFlags(ctx, uID, list); err != nil {
		return nil, err
	}
	return c, nil
}

// thread expects comments ordered oldest first.
func thread(all []*models.Comment) []*models.Comment {
	top := map[uuid.UUID]*models.Comment{}
	for _, c := range all {
		if c.ParentID == nil {
			c.Replies = []*models.Comment{}
			top[c.CommentID] = c
		}
	}
	res := []*models.Comment{}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ParentID == nil {
			res = append(res, all[i])
		}
	}
	for _, c := range all {
		if c.ParentID == nil {
			continue
		}
		if p, ok := top[*c.ParentID]; ok {
			p.Replies = append(p.Replies, c)
		}
	}
	return res
}

func (s *Comments) Add(ctx context.Context, uID uuid.UUID, videoID string, text string) (*models.Comment, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, sv.Wrap(sv.ErrBadRequest, "Video ID is required")
	}
	return s.create(ctx, uID, videoID, nil, text)
}

// Reply attaches a reply to the comment. Replies to a reply go to the
// top-level comment of the thread.
func (s *Comments) Reply(ctx context.Context, uID uuid.UUID, parentID uuid.UUID, text string) (*models.Comment, error) {
	if _, err := checkText(text); err != nil {
		return nil, err
	}
	p, err := s.store.GetComment(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "Comment not found")
	}
	rootID := p.CommentID
	if p.ParentID != nil {
		rootID = *p.ParentID
	}
	return s.create(ctx, uID, p.VideoID, &rootID, text)
}

func (s *Comments) create(ctx context.Context, uID uuid.UUID, videoID string, parentID *uuid.UUID, text string) (*models.Comment, error) {
	text, err := checkText(text)
	if err != nil {
		return nil, err
	}
	u, err := s.store.GetUser(ctx, uID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "User not found")
	}
	c := &models.Comment{
		VideoID:    videoID,
		ParentID:   parentID,
		UserID:     u.UserID,
		Username:   u.Username,
		UserAvatar: u.Avatar,
		Text:       text,
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	if parentID == nil {
		c.Replies = []*models.Comment{}
	}
	log.WithFields(log.Fields{
		"comment_id": c.CommentID,
		"video_id":   videoID,
		"user_id":    uID,
	}).Info("comment created")
	return c, nil
}

func (s *Comments) Edit(ctx context.Context, uID uuid.UUID, id uuid.UUID, text string) (*models.Comment, error) {
	text, err := checkText(text)
	if err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, uID, id)
	if err != nil {
		return nil, err
	}
	c.Text = text
	if err := s.store.UpdateCommentText(ctx, c); err != nil {
		return nil, err
	}
	return s.decorate(ctx, uID, c)
}

// Delete removes the comment with its replies and reactions.
func (s *Comments) Delete(ctx context.Context, uID uuid.UUID, id uuid.UUID) error {
	if _, err := s.owned(ctx, uID, id); err != nil {
		return err
	}
	return s.store.DeleteComment(ctx, id)
}

func (s *Comments) Like(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error) {
	return s.react(ctx, uID, id, models.ReactionLike)
}

func (s *Comments) Dislike(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error) {
	return s.react(ctx, uID, id, models.ReactionDislike)
}

func (s *Comments) ClearReaction(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error) {
	return s.react(ctx, uID, id, models.ReactionNone)
}

func (s *Comments) react(ctx context.Context, uID uuid.UUID, id uuid.UUID, k models.ReactionKind) (*models.Comment, error) {
	c, err := s.store.SetReaction(ctx, id, uID, k)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "Comment not found")
	}
	return s.decorate(ctx, uID, c)
}

func (s *Comments) owned(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error) {
	c, err := s.store.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, sv.Wrap(sv.ErrNotFound, "Comment not found")
	}
	if !uuid.Equal(c.UserID, uID) {
		return nil, sv.Wrap(sv.ErrForbidden, "Not allowed to modify this comment")
	}
	return c, nil
}

func checkText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", sv.Wrap(sv.ErrBadRequest, "Comment text is required")
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return "", sv.Wrap(sv.ErrBadRequest, "Comment text is too long")
	}
	return text, nil
}
