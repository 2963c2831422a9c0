package comments

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"

	hc "github.com/tubeview/web-api/handlers/common"
	"github.com/tubeview/web-api/models"
	"github.com/tubeview/web-api/services/auth"
)

type Comments interface {
	List(ctx context.Context, videoID string, viewer *uuid.UUID) ([]*models.Comment, error)
	Add(ctx context.Context, uID uuid.UUID, videoID string, text string) (*models.Comment, error)
	Reply(ctx context.Context, uID uuid.UUID, parentID uuid.UUID, text string) (*models.Comment, error)
	Edit(ctx context.Context, uID uuid.UUID, id uuid.UUID, text string) (*models.Comment, error)
	Delete(ctx context.Context, uID uuid.UUID, id uuid.UUID) error
	Like(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error)
	Dislike(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error)
	ClearReaction(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error)
}

type Handler struct {
	comments Comments
}

type textRequest struct {
	Text string `json:"text"`
}

func RegisterHandler(r *gin.Engine, cm Comments) {
	h := &Handler{
		comments: cm,
	}
	gr := r.Group("/comments")
	gr.GET("/video/:videoId", h.list)
	gr.POST("/video/:videoId", auth.HasAuth, h.add)
	gr.PUT("/:id", auth.HasAuth, h.edit)
	gr.DELETE("/:id", auth.HasAuth, h.delete)
	gr.POST("/:id/replies", auth.HasAuth, h.reply)
	gr.POST("/:id/like", auth.HasAuth, h.react(cm.Like))
	gr.POST("/:id/dislike", auth.HasAuth, h.react(cm.Dislike))
	gr.DELETE("/:id/reaction", auth.HasAuth, h.react(cm.ClearReaction))
}

func commentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, hc.ErrorResponse{Message: "Comment not found"})
		return uuid.Nil, false
	}
	return id, true
}

func bindText(c *gin.Context) (string, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		hc.BadRequest(c, "Comment text is required")
		return "", false
	}
	return req.Text, true
}

func (h *Handler) list(c *gin.Context) {
	var viewer *uuid.UUID
	if u := auth.GetUserFromContext(c); u.HasAuth() {
		viewer = &u.UserID
	}
	list, err := h.comments.List(c.Request.Context(), c.Param("videoId"), viewer)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) add(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	cm, err := h.comments.Add(c.Request.Context(), u.UserID, c.Param("videoId"), text)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *Handler) reply(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	cm, err := h.comments.Reply(c.Request.Context(), u.UserID, id, text)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *Handler) edit(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}
	text, ok := bindText(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	cm, err := h.comments.Edit(c.Request.Context(), u.UserID, id, text)
	if err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}
	u := auth.GetUserFromContext(c)
	if err := h.comments.Delete(c.Request.Context(), u.UserID, id); err != nil {
		hc.RespondError(c, err, "Server error")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) react(fn func(ctx context.Context, uID uuid.UUID, id uuid.UUID) (*models.Comment, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := commentID(c)
		if !ok {
			return
		}
		u := auth.GetUserFromContext(c)
		cm, err := fn(c.Request.Context(), u.UserID, id)
		if err != nil {
			hc.RespondError(c, err, "Server error")
			return
		}
		c.JSON(http.StatusOK, cm)
	}
}
