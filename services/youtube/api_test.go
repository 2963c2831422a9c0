package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, h http.HandlerFunc) (*Api, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewApi(Config{
		URL:        srv.URL,
		Key:        "test-key",
		Timeout:    time.Second,
		RegionCode: "US",
	}), srv
}

func TestTrending_Params(t *testing.T) {
	var got *http.Request
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"kind":"youtube#videoListResponse","items":[]}`))
	})

	_, err := api.Trending(context.Background(), TrendingParams{})
	require.NoError(t, err)

	assert.Equal(t, "/youtube/v3/videos", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "mostPopular", q.Get("chart"))
	assert.Equal(t, "snippet,contentDetails,statistics", q.Get("part"))
	assert.Equal(t, "US", q.Get("regionCode"))
	assert.Equal(t, "20", q.Get("maxResults"))
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Empty(t, q.Get("pageToken"))
}

func TestSearch_ParamsAndLimit(t *testing.T) {
	var got *http.Request
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := api.Search(context.Background(), SearchParams{Query: "go tutorial", MaxResults: 500, PageToken: "CAUQAA"})
	require.NoError(t, err)

	q := got.URL.Query()
	assert.Equal(t, "/youtube/v3/search", got.URL.Path)
	assert.Equal(t, "go tutorial", q.Get("q"))
	assert.Equal(t, "video", q.Get("type"))
	assert.Equal(t, "50", q.Get("maxResults"))
	assert.Equal(t, "CAUQAA", q.Get("pageToken"))
}

func TestRelatedAndComments_Params(t *testing.T) {
	var paths []string
	var queries []map[string]string
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		q := r.URL.Query()
		queries = append(queries, map[string]string{
			"relatedToVideoId": q.Get("relatedToVideoId"),
			"videoId":          q.Get("videoId"),
			"maxResults":       q.Get("maxResults"),
			"part":             q.Get("part"),
			"order":            q.Get("order"),
		})
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := api.RelatedVideos(context.Background(), "abc123", 0)
	require.NoError(t, err)
	_, err = api.Comments(context.Background(), "abc123", CommentsParams{})
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "/youtube/v3/search", paths[0])
	assert.Equal(t, "abc123", queries[0]["relatedToVideoId"])
	assert.Equal(t, "15", queries[0]["maxResults"])
	assert.Equal(t, "/youtube/v3/commentThreads", paths[1])
	assert.Equal(t, "abc123", queries[1]["videoId"])
	assert.Equal(t, "snippet,replies", queries[1]["part"])
	assert.Equal(t, "relevance", queries[1]["order"])
	assert.Equal(t, "50", queries[1]["maxResults"])
}

func TestVideoDetails_DecodesAndKeepsRaw(t *testing.T) {
	payload := `{"kind":"youtube#videoListResponse","etag":"x","unknownField":42,"items":[{"id":"abc123","snippet":{"title":"Hello","channelId":"chX","channelTitle":"Chan","thumbnails":{"default":{"url":"http://img/d.jpg"}}},"statistics":{"viewCount":"10"}}]}`
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(payload))
	})

	res, err := api.VideoDetails(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "chX", res.Items[0].Snippet.ChannelID)
	assert.Equal(t, "http://img/d.jpg", res.Items[0].Snippet.Thumbnails.Best())
	assert.Equal(t, "10", res.Items[0].Statistics.ViewCount)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(b))
}

func TestChannelDetails_MissingItems(t *testing.T) {
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kind":"youtube#channelListResponse","pageInfo":{"totalResults":0}}`))
	})

	res, err := api.ChannelDetails(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, res.Items)
}

func TestGet_UpstreamError(t *testing.T) {
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	})

	_, err := api.VideoDetails(context.Background(), "abc123")
	require.Error(t, err)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	assert.Equal(t, "quota exceeded", ue.Message)
}

func TestGet_UpstreamErrorWithoutBody(t *testing.T) {
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.Search(context.Background(), SearchParams{Query: "x"})
	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
	assert.Equal(t, "Bad Gateway", ue.Message)
}

func TestGet_TimeoutIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	api := NewApi(Config{URL: srv.URL, Key: "secret-key", Timeout: 50 * time.Millisecond})

	_, err := api.Trending(context.Background(), TrendingParams{})
	require.Error(t, err)

	var ue *Error
	assert.False(t, errors.As(err, &ue))
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestGet_InvalidJSON(t *testing.T) {
	api, _ := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := api.Trending(context.Background(), TrendingParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestThumbnails_Best(t *testing.T) {
	tests := []struct {
		name string
		in   Thumbnails
		want string
	}{
		{"empty", Thumbnails{}, ""},
		{"default", Thumbnails{Default: &Thumbnail{URL: "d"}, High: &Thumbnail{URL: "h"}}, "d"},
		{"medium fallback", Thumbnails{Medium: &Thumbnail{URL: "m"}, High: &Thumbnail{URL: "h"}}, "m"},
		{"high fallback", Thumbnails{Default: &Thumbnail{}, High: &Thumbnail{URL: "h"}}, "h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Best())
		})
	}
}

func TestList_MarshalWithoutRaw(t *testing.T) {
	l := &SearchList{Kind: "k", Items: []SearchResult{{ID: ResourceID{VideoID: "v1"}}}}
	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"videoId":"v1"`)
}
