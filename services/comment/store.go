package comment

import (
	"context"

	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

type commentStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetVideoComments(ctx context.Context, videoID string) ([]*models.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	UpdateCommentText(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
	GetUserReactions(ctx context.Context, uID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.ReactionKind, error)
	SetReaction(ctx context.Context, id uuid.UUID, uID uuid.UUID, k models.ReactionKind) (*models.Comment, error)
}

type pgCommentStore struct {
	pg *cs.PG
}

func (s *pgCommentStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetUserByID(ctx, db, id)
}

func (s *pgCommentStore) GetVideoComments(ctx context.Context, videoID string) ([]*models.Comment, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetVideoComments(ctx, db, videoID)
}

func (s *pgCommentStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetComment(ctx, db, id)
}

func (s *pgCommentStore) GetReplies(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetCommentReplies(ctx, db, parentID)
}

func (s *pgCommentStore) CreateComment(ctx context.Context, c *models.Comment) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.CreateComment(ctx, db, c)
}

func (s *pgCommentStore) UpdateCommentText(ctx context.Context, c *models.Comment) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.UpdateCommentText(ctx, db, c)
}

func (s *pgCommentStore) DeleteComment(ctx context.Context, id uuid.UUID) error {
	db, err := sv.DB(s.pg)
	if err != nil {
		return err
	}
	return models.DeleteComment(ctx, db, id)
}

func (s *pgCommentStore) GetUserReactions(ctx context.Context, uID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.ReactionKind, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetUserReactions(ctx, db, uID, ids)
}

func (s *pgCommentStore) SetReaction(ctx context.Context, id uuid.UUID, uID uuid.UUID, k models.ReactionKind) (*models.Comment, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.SetCommentReaction(ctx, db, id, uID, k)
}
