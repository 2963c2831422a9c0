package view

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sv "github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/youtube"
)

type mockSource struct {
	mu sync.Mutex

	videos  map[string]*youtube.VideoList
	channel *youtube.ChannelList
	related *youtube.SearchList

	videoErr   error
	channelErr error
	relatedErr error

	calls         []string
	channelCalled string
	videoDone     bool
	orderViolated bool
}

func (m *mockSource) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if call != "video" && !m.videoDone {
		m.orderViolated = true
	}
}

func (m *mockSource) VideoDetails(_ context.Context, id string) (*youtube.VideoList, error) {
	m.record("video")
	defer func() {
		m.mu.Lock()
		m.videoDone = true
		m.mu.Unlock()
	}()
	if m.videoErr != nil {
		return nil, m.videoErr
	}
	if v, ok := m.videos[id]; ok {
		return v, nil
	}
	return &youtube.VideoList{Items: []youtube.Video{}}, nil
}

func (m *mockSource) ChannelDetails(_ context.Context, id string) (*youtube.ChannelList, error) {
	m.record("channel")
	m.mu.Lock()
	m.channelCalled = id
	m.mu.Unlock()
	if m.channelErr != nil {
		return nil, m.channelErr
	}
	return m.channel, nil
}

func (m *mockSource) RelatedVideos(_ context.Context, _ string, _ int) (*youtube.SearchList, error) {
	m.record("related")
	if m.relatedErr != nil {
		return nil, m.relatedErr
	}
	return m.related, nil
}

func newMockSource() *mockSource {
	return &mockSource{
		videos: map[string]*youtube.VideoList{
			"abc123": {Items: []youtube.Video{{
				ID:      "abc123",
				Snippet: youtube.VideoSnippet{Title: "Video", ChannelID: "chX"},
			}}},
		},
		channel: &youtube.ChannelList{Items: []youtube.Channel{
			{ID: "chX", Snippet: youtube.ChannelSnippet{Title: "Channel X"}},
			{ID: "chY"},
		}},
		related: &youtube.SearchList{Items: []youtube.SearchResult{
			{ID: youtube.ResourceID{VideoID: "r1"}},
			{ID: youtube.ResourceID{VideoID: "r2"}},
			{ID: youtube.ResourceID{VideoID: "r3"}},
		}},
	}
}

func TestViewer_Get_Success(t *testing.T) {
	src := newMockSource()
	v := New(src)

	m, err := v.Get(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", m.Video.ID)
	assert.Equal(t, "chX", src.channelCalled)
	assert.Equal(t, src.channel.Items[0], m.Channel)
	assert.Equal(t, src.related.Items, m.RelatedVideos)
	assert.Equal(t, "video", src.calls[0])
	assert.Len(t, src.calls, 3)
	assert.False(t, src.orderViolated, "channel/related fetched before video resolved")
}

func TestViewer_Get_VideoNotFoundSkipsDependentCalls(t *testing.T) {
	src := newMockSource()
	v := New(src)

	_, err := v.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sv.ErrNotFound))
	assert.Equal(t, []string{"video"}, src.calls)
}

func TestViewer_Get_VideoError(t *testing.T) {
	src := newMockSource()
	src.videoErr = &youtube.Error{StatusCode: 500, Message: "boom"}

	_, err := New(src).Get(context.Background(), "abc123")
	var ue *youtube.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"video"}, src.calls)
}

func TestViewer_Get_ChannelFailureFailsWhole(t *testing.T) {
	src := newMockSource()
	src.channelErr = errors.New("network down")

	m, err := New(src).Get(context.Background(), "abc123")
	require.Error(t, err)
	assert.Nil(t, m)
}

func TestViewer_Get_RelatedFailureFailsWhole(t *testing.T) {
	src := newMockSource()
	src.relatedErr = &youtube.Error{StatusCode: 403, Message: "quota"}

	m, err := New(src).Get(context.Background(), "abc123")
	require.Error(t, err)
	assert.Nil(t, m)
	var ue *youtube.Error
	assert.True(t, errors.As(err, &ue))
}

func TestViewer_Get_EmptyChannelIsNotFound(t *testing.T) {
	src := newMockSource()
	src.channel = &youtube.ChannelList{}

	_, err := New(src).Get(context.Background(), "abc123")
	assert.True(t, errors.Is(err, sv.ErrNotFound))
}

func TestViewer_Get_NilRelatedBecomesEmpty(t *testing.T) {
	src := newMockSource()
	src.related = &youtube.SearchList{}

	m, err := New(src).Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.NotNil(t, m.RelatedVideos)
	assert.Empty(t, m.RelatedVideos)
}
