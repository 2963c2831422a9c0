package youtube

import "encoding/json"

// List is a page of items returned by the YouTube Data API.
//
// Only the fields the backend reads are declared. The undecoded upstream
// payload is kept aside so the list can be handed to clients verbatim.
type List[T any] struct {
	Kind          string   `json:"kind"`
	Etag          string   `json:"etag"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	PrevPageToken string   `json:"prevPageToken,omitempty"`
	PageInfo      PageInfo `json:"pageInfo"`
	Items         []T      `json:"items"`

	raw json.RawMessage
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

func (l *List[T]) Raw() json.RawMessage {
	return l.raw
}

func (l *List[T]) MarshalJSON() ([]byte, error) {
	if l.raw != nil {
		return l.raw, nil
	}
	return json.Marshal(struct {
		Kind          string   `json:"kind"`
		Etag          string   `json:"etag"`
		NextPageToken string   `json:"nextPageToken,omitempty"`
		PrevPageToken string   `json:"prevPageToken,omitempty"`
		PageInfo      PageInfo `json:"pageInfo"`
		Items         []T      `json:"items"`
	}{l.Kind, l.Etag, l.NextPageToken, l.PrevPageToken, l.PageInfo, l.Items})
}

type (
	VideoList         = List[Video]
	SearchList        = List[SearchResult]
	ChannelList       = List[Channel]
	CommentThreadList = List[CommentThread]
)

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Thumbnails struct {
	Default *Thumbnail `json:"default,omitempty"`
	Medium  *Thumbnail `json:"medium,omitempty"`
	High    *Thumbnail `json:"high,omitempty"`
}

// Best returns the smallest available thumbnail URL, preferring default.
func (t Thumbnails) Best() string {
	for _, th := range []*Thumbnail{t.Default, t.Medium, t.High} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type Video struct {
	Kind           string              `json:"kind"`
	ID             string              `json:"id"`
	Snippet        VideoSnippet        `json:"snippet"`
	ContentDetails VideoContentDetails `json:"contentDetails"`
	Statistics     VideoStatistics     `json:"statistics"`
}

type VideoSnippet struct {
	PublishedAt  string     `json:"publishedAt"`
	ChannelID    string     `json:"channelId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	Tags         []string   `json:"tags,omitempty"`
}

type VideoContentDetails struct {
	Duration   string `json:"duration"`
	Definition string `json:"definition,omitempty"`
}

// Counters are strings in the upstream schema.
type VideoStatistics struct {
	ViewCount    string `json:"viewCount,omitempty"`
	LikeCount    string `json:"likeCount,omitempty"`
	CommentCount string `json:"commentCount,omitempty"`
}

type SearchResult struct {
	Kind    string       `json:"kind"`
	ID      ResourceID   `json:"id"`
	Snippet VideoSnippet `json:"snippet"`
}

type ResourceID struct {
	Kind      string `json:"kind"`
	VideoID   string `json:"videoId,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
}

type Channel struct {
	Kind       string            `json:"kind"`
	ID         string            `json:"id"`
	Snippet    ChannelSnippet    `json:"snippet"`
	Statistics ChannelStatistics `json:"statistics"`
}

type ChannelSnippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CustomURL   string     `json:"customUrl,omitempty"`
	PublishedAt string     `json:"publishedAt"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

type ChannelStatistics struct {
	ViewCount             string `json:"viewCount,omitempty"`
	SubscriberCount       string `json:"subscriberCount,omitempty"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount,omitempty"`
	VideoCount            string `json:"videoCount,omitempty"`
}

type CommentThread struct {
	Kind    string               `json:"kind"`
	ID      string               `json:"id"`
	Snippet CommentThreadSnippet `json:"snippet"`
	Replies *CommentReplies      `json:"replies,omitempty"`
}

type CommentThreadSnippet struct {
	VideoID         string  `json:"videoId"`
	TopLevelComment Comment `json:"topLevelComment"`
	TotalReplyCount int     `json:"totalReplyCount"`
}

type CommentReplies struct {
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID      string         `json:"id"`
	Snippet CommentSnippet `json:"snippet"`
}

type CommentSnippet struct {
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	TextDisplay           string `json:"textDisplay"`
	LikeCount             int    `json:"likeCount"`
	PublishedAt           string `json:"publishedAt"`
}
