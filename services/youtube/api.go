package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	apiKeyFlag     = "youtube-api-key"
	apiHostFlag    = "youtube-api-host"
	apiPortFlag    = "youtube-api-port"
	apiSecureFlag  = "youtube-api-secure"
	apiTimeoutFlag = "youtube-api-timeout"
	regionCodeFlag = "youtube-region-code"
)

const (
	DefaultMaxResults         = 20
	DefaultRelatedMaxResults  = 15
	DefaultCommentsMaxResults = 50
	maxResultsLimit           = 50
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   apiHostFlag,
			Usage:  "youtube api host",
			EnvVar: "YOUTUBE_API_HOST",
			Value:  "www.googleapis.com",
		},
		cli.IntFlag{
			Name:   apiPortFlag,
			Usage:  "youtube api port",
			EnvVar: "YOUTUBE_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   apiSecureFlag,
			Usage:  "youtube api secure (https)",
			EnvVar: "YOUTUBE_API_SECURE",
		},
		cli.StringFlag{
			Name:   apiKeyFlag,
			Usage:  "youtube api key",
			Value:  "",
			EnvVar: "YOUTUBE_API_KEY",
		},
		cli.DurationFlag{
			Name:   apiTimeoutFlag,
			Usage:  "timeout of a single youtube api call",
			Value:  10 * time.Second,
			EnvVar: "YOUTUBE_API_TIMEOUT",
		},
		cli.StringFlag{
			Name:   regionCodeFlag,
			Usage:  "default region code for trending videos",
			Value:  "US",
			EnvVar: "YOUTUBE_REGION_CODE",
		},
	)
}

type Config struct {
	URL        string
	Key        string
	Timeout    time.Duration
	RegionCode string
}

// Error is returned when the API answers with a non-2xx status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("youtube api error (code %d): %s", e.StatusCode, e.Message)
}

type Api struct {
	url            string
	cl             *http.Client
	regionCode     string
	prepareRequest func(r *http.Request) (*http.Request, error)
}

func New(c *cli.Context) *Api {
	protocol := "http"
	if c.BoolT(apiSecureFlag) {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, c.String(apiHostFlag), c.Int(apiPortFlag))
	key := c.String(apiKeyFlag)
	if key == "" {
		log.Warn("youtube api key is not set, upstream calls will be rejected")
	}
	return NewApi(Config{
		URL:        u,
		Key:        key,
		Timeout:    c.Duration(apiTimeoutFlag),
		RegionCode: c.String(regionCodeFlag),
	})
}

func NewApi(cfg Config) *Api {
	key := cfg.Key
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		q := r.URL.Query()
		q.Set("key", key)
		r.URL.RawQuery = q.Encode()
		r.Header.Set("Accept", "application/json")
		return r, nil
	}
	log.Infof("youtube api endpoint %v", cfg.URL)
	return &Api{
		url:            strings.TrimSuffix(cfg.URL, "/") + "/youtube/v3",
		cl:             &http.Client{Timeout: cfg.Timeout},
		regionCode:     cfg.RegionCode,
		prepareRequest: prepareRequest,
	}
}

type TrendingParams struct {
	RegionCode string
	MaxResults int
	PageToken  string
}

func (api *Api) Trending(ctx context.Context, p TrendingParams) (*VideoList, error) {
	region := p.RegionCode
	if region == "" {
		region = api.regionCode
	}
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("chart", "mostPopular")
	if region != "" {
		q.Set("regionCode", region)
	}
	q.Set("maxResults", maxResults(p.MaxResults, DefaultMaxResults))
	setPageToken(q, p.PageToken)
	var res VideoList
	if err := api.get(ctx, "videos", q, &res); err != nil {
		return nil, errors.WithMessage(err, "failed to fetch trending videos")
	}
	return &res, nil
}

type SearchParams struct {
	Query      string
	MaxResults int
	PageToken  string
}

func (api *Api) Search(ctx context.Context, p SearchParams) (*SearchList, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", p.Query)
	q.Set("type", "video")
	q.Set("maxResults", maxResults(p.MaxResults, DefaultMaxResults))
	setPageToken(q, p.PageToken)
	var res SearchList
	if err := api.get(ctx, "search", q, &res); err != nil {
		return nil, errors.WithMessage(err, "failed to search videos")
	}
	return &res, nil
}

func (api *Api) VideoDetails(ctx context.Context, id string) (*VideoList, error) {
	q := url.Values{}
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("id", id)
	var res VideoList
	if err := api.get(ctx, "videos", q, &res); err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch video details (id=%v)", id)
	}
	return &res, nil
}

func (api *Api) ChannelDetails(ctx context.Context, id string) (*ChannelList, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", id)
	var res ChannelList
	if err := api.get(ctx, "channels", q, &res); err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch channel details (id=%v)", id)
	}
	return &res, nil
}

func (api *Api) RelatedVideos(ctx context.Context, videoID string, max int) (*SearchList, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("relatedToVideoId", videoID)
	q.Set("type", "video")
	q.Set("maxResults", maxResults(max, DefaultRelatedMaxResults))
	var res SearchList
	if err := api.get(ctx, "search", q, &res); err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch related videos (id=%v)", videoID)
	}
	return &res, nil
}

type CommentsParams struct {
	MaxResults int
	PageToken  string
}

func (api *Api) Comments(ctx context.Context, videoID string, p CommentsParams) (*CommentThreadList, error) {
	q := url.Values{}
	q.Set("part", "snippet,replies")
	q.Set("videoId", videoID)
	q.Set("order", "relevance")
	q.Set("maxResults", maxResults(p.MaxResults, DefaultCommentsMaxResults))
	setPageToken(q, p.PageToken)
	var res CommentThreadList
	if err := api.get(ctx, "commentThreads", q, &res); err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch comment threads (id=%v)", videoID)
	}
	return &res, nil
}

type rawSetter interface {
	setRaw(raw json.RawMessage)
}

func (l *List[T]) setRaw(raw json.RawMessage) {
	l.raw = raw
}

func (api *Api) get(ctx context.Context, resource string, q url.Values, out rawSetter) error {
	reqURL := fmt.Sprintf("%s/%s?%s", api.url, resource, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req, err = api.prepareRequest(req)
	if err != nil {
		return errors.Wrap(err, "prepare request")
	}
	resp, err := api.cl.Do(req)
	if err != nil {
		// url.Error carries the full request URL including the key
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	out.setRaw(body)
	return nil
}

func parseError(resp *http.Response, body []byte) error {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	e := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		e.Message = apiErr.Error.Message
	}
	return e
}

func maxResults(v int, def int) string {
	if v <= 0 {
		v = def
	}
	if v > maxResultsLimit {
		v = maxResultsLimit
	}
	return strconv.Itoa(v)
}

func setPageToken(q url.Values, token string) {
	if token != "" {
		q.Set("pageToken", token)
	}
}
