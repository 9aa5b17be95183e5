package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/ideaspark/ideaspark/internal/pkg/cache"
)

const defaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	maxCommentFetch = 100
	topCommentCount = 12
	trendingCount   = 10
)

// ErrVideoNotFound is returned when the API reports no items for a video id.
var ErrVideoNotFound = errors.New("video not found")

// Client talks to the YouTube Data API v3. Responses for details and
// trending are cached when the TTLs are set; comments are always fetched
// fresh.
type Client struct {
	APIKey     string
	APIBaseURL string

	HTTPClient *http.Client

	// Cache TTLs. Zero disables caching for the corresponding lookup.
	DetailsCacheTTL  time.Duration
	TrendingCacheTTL time.Duration
}

// VideoDetails is the metadata subset the generator and the UI consume.
type VideoDetails struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Channel     string `json:"channel"`
}

// Comment is a single top-level comment with its like count.
type Comment struct {
	Text      string `json:"text"`
	LikeCount int    `json:"likeCount"`
	Author    string `json:"author"`
}

// TrendingVideo is one entry of the most-popular chart.
type TrendingVideo struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}

// NewClient creates a client with a 15 second request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		APIBaseURL: defaultAPIBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		DetailsCacheTTL:  time.Hour,
		TrendingCacheTTL: 15 * time.Minute,
	}
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					LikeCount         int    `json:"likeCount"`
					AuthorDisplayName string `json:"authorDisplayName"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// FetchVideoDetails returns the snippet metadata for a video.
func (c *Client) FetchVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	cacheKey := "yt:video:" + videoID
	if c.DetailsCacheTTL > 0 {
		if cached, err := cache.Get(cacheKey); err == nil {
			var details VideoDetails
			if err := json.Unmarshal([]byte(cached), &details); err == nil {
				return &details, nil
			}
		}
	}

	var out videosResponse
	err := c.get(ctx, "/videos", url.Values{
		"part": {"snippet"},
		"id":   {videoID},
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := out.Items[0]
	details := &VideoDetails{
		VideoID:     videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
		Channel:     item.Snippet.ChannelTitle,
	}

	if c.DetailsCacheTTL > 0 {
		if payload, err := json.Marshal(details); err == nil {
			_ = cache.Set(cacheKey, payload, c.DetailsCacheTTL)
		}
	}
	return details, nil
}

// FetchTopComments returns the most-liked top-level comments, best first,
// capped at twelve.
func (c *Client) FetchTopComments(ctx context.Context, videoID string) ([]Comment, error) {
	var out commentThreadsResponse
	err := c.get(ctx, "/commentThreads", url.Values{
		"part":       {"snippet"},
		"videoId":    {videoID},
		"maxResults": {fmt.Sprintf("%d", maxCommentFetch)},
	}, &out)
	if err != nil {
		return nil, err
	}

	comments := make([]Comment, 0, len(out.Items))
	for _, item := range out.Items {
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, Comment{
			Text:      s.TextDisplay,
			LikeCount: s.LikeCount,
			Author:    s.AuthorDisplayName,
		})
	}
	return TopComments(comments, topCommentCount), nil
}

// TopComments sorts by like count descending and keeps the first limit
// entries. Exposed for the façade, which re-ranks cached comment sets.
func TopComments(comments []Comment, limit int) []Comment {
	sorted := make([]Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LikeCount > sorted[j].LikeCount
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FetchTrending returns the most-popular chart for a region, optionally
// filtered by category.
func (c *Client) FetchTrending(ctx context.Context, categoryID, regionCode string) ([]TrendingVideo, error) {
	if regionCode == "" {
		regionCode = "US"
	}

	cacheKey := "yt:trending:" + regionCode + ":" + categoryID
	if c.TrendingCacheTTL > 0 {
		if cached, err := cache.Get(cacheKey); err == nil {
			var videos []TrendingVideo
			if err := json.Unmarshal([]byte(cached), &videos); err == nil {
				return videos, nil
			}
		}
	}

	params := url.Values{
		"part":       {"snippet"},
		"chart":      {"mostPopular"},
		"regionCode": {regionCode},
		"maxResults": {fmt.Sprintf("%d", trendingCount)},
	}
	if categoryID != "" {
		params.Set("videoCategoryId", categoryID)
	}

	var out videosResponse
	if err := c.get(ctx, "/videos", params, &out); err != nil {
		return nil, err
	}

	videos := make([]TrendingVideo, 0, len(out.Items))
	for _, item := range out.Items {
		videos = append(videos, TrendingVideo{
			VideoID:   item.ID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails.Medium.URL,
			Channel:   item.Snippet.ChannelTitle,
		})
	}

	if c.TrendingCacheTTL > 0 {
		if payload, err := json.Marshal(videos); err == nil {
			_ = cache.Set(cacheKey, payload, c.TrendingCacheTTL)
		}
	}
	return videos, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.APIKey == "" {
		return errors.New("YOUTUBE_API_KEY is not configured")
	}
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("youtube api returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
