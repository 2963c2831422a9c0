package videos

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	hc "github.com/tubeview/web-api/handlers/common"
	"github.com/tubeview/web-api/services/youtube"
)

type pageQuery struct {
	MaxResults int    `form:"maxResults" binding:"omitempty,min=1,max=50"`
	PageToken  string `form:"pageToken"`
}

type trendingQuery struct {
	MaxResults int    `form:"maxResults" binding:"omitempty,min=1,max=50"`
	PageToken  string `form:"pageToken"`
	RegionCode string `form:"regionCode" binding:"omitempty,len=2,alpha"`
}

type searchQuery struct {
	MaxResults int    `form:"maxResults" binding:"omitempty,min=1,max=50"`
	PageToken  string `form:"pageToken"`
	Query      string `form:"query"`
}

func param(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}

func (h *Handler) trending(c *gin.Context) {
	var q trendingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		hc.BadRequest(c, "Invalid query parameters")
		return
	}
	res, err := h.api.Trending(c.Request.Context(), youtube.TrendingParams{
		RegionCode: strings.ToUpper(q.RegionCode),
		MaxResults: q.MaxResults,
		PageToken:  q.PageToken,
	})
	if err != nil {
		hc.RespondError(c, err, "Failed to fetch trending videos")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		hc.BadRequest(c, "Invalid query parameters")
		return
	}
	res, err := h.api.Search(c.Request.Context(), youtube.SearchParams{
		Query:      q.Query,
		MaxResults: q.MaxResults,
		PageToken:  q.PageToken,
	})
	if err != nil {
		hc.RespondError(c, err, "Failed to search videos")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) video(c *gin.Context) {
	id := param(c, "id")
	if id == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	res, err := h.api.VideoDetails(c.Request.Context(), id)
	if err != nil {
		hc.RespondError(c, err, "Failed to fetch video details")
		return
	}
	if len(res.Items) == 0 {
		c.JSON(http.StatusNotFound, hc.ErrorResponse{Message: "Video not found"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) view(c *gin.Context) {
	id := param(c, "id")
	if id == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	m, err := h.viewer.Get(c.Request.Context(), id)
	if err != nil {
		hc.RespondError(c, err, "Failed to load video")
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) channel(c *gin.Context) {
	id := param(c, "channelId")
	if id == "" {
		hc.BadRequest(c, "Channel ID is required")
		return
	}
	res, err := h.api.ChannelDetails(c.Request.Context(), id)
	if err != nil {
		hc.RespondError(c, err, "Failed to fetch channel details")
		return
	}
	if len(res.Items) == 0 {
		c.JSON(http.StatusNotFound, hc.ErrorResponse{Message: "Channel not found"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// related answers 404 only when upstream omitted the items field, an empty
// list is a valid answer.
func (h *Handler) related(c *gin.Context) {
	id := param(c, "videoId")
	if id == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	res, err := h.api.RelatedVideos(c.Request.Context(), id, youtube.DefaultRelatedMaxResults)
	if err != nil {
		hc.RespondError(c, err, "Failed to fetch related videos")
		return
	}
	if res.Items == nil {
		c.JSON(http.StatusNotFound, hc.ErrorResponse{Message: "No related videos found"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) comments(c *gin.Context) {
	id := param(c, "videoId")
	if id == "" {
		hc.BadRequest(c, "Video ID is required")
		return
	}
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		hc.BadRequest(c, "Invalid query parameters")
		return
	}
	res, err := h.api.Comments(c.Request.Context(), id, youtube.CommentsParams{
		MaxResults: q.MaxResults,
		PageToken:  q.PageToken,
	})
	if err != nil {
		hc.RespondError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, res)
}
