package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a cache-disabled client at a stub API server.
func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := &Client{
		APIKey:     "test-key",
		APIBaseURL: srv.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
	return c, srv
}

func TestFetchVideoDetails(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"items":[{"id":"abc123","snippet":{
			"title":"How It Works",
			"description":"An explainer",
			"channelTitle":"SparkLab",
			"thumbnails":{"medium":{"url":"https://img.example/abc.jpg"}}
		}}]}`)
	}))
	defer srv.Close()

	details, err := c.FetchVideoDetails(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", details.VideoID)
	assert.Equal(t, "How It Works", details.Title)
	assert.Equal(t, "An explainer", details.Description)
	assert.Equal(t, "SparkLab", details.Channel)
	assert.Equal(t, "https://img.example/abc.jpg", details.Thumbnail)
}

func TestFetchVideoDetails_NotFound(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	_, err := c.FetchVideoDetails(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestFetchVideoDetails_APIError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	_, err := c.FetchVideoDetails(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestFetchVideoDetails_MissingAPIKey(t *testing.T) {
	c := &Client{HTTPClient: http.DefaultClient}
	_, err := c.FetchVideoDetails(context.Background(), "abc123")
	assert.Error(t, err)
}

func TestFetchTopComments_SortsAndCaps(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commentThreads", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[`)
		for i := 0; i < 20; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			// like counts 0..19 in ascending order
			fmt.Fprintf(w, `{"snippet":{"topLevelComment":{"snippet":{
				"textDisplay":"comment %d","likeCount":%d,"authorDisplayName":"user%d"}}}}`, i, i, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	comments, err := c.FetchTopComments(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, comments, 12)
	assert.Equal(t, 19, comments[0].LikeCount)
	assert.Equal(t, "comment 19", comments[0].Text)
	assert.Equal(t, 8, comments[11].LikeCount)
	for i := 1; i < len(comments); i++ {
		assert.GreaterOrEqual(t, comments[i-1].LikeCount, comments[i].LikeCount)
	}
}

func TestTopComments_StableForTies(t *testing.T) {
	in := []Comment{
		{Text: "a", LikeCount: 5},
		{Text: "b", LikeCount: 5},
		{Text: "c", LikeCount: 9},
	}
	out := TopComments(in, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "c", out[0].Text)
	assert.Equal(t, "a", out[1].Text, "equal like counts keep input order")
	assert.Equal(t, "a", in[0].Text, "input slice is not reordered")
}

func TestFetchTrending(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "mostPopular", r.URL.Query().Get("chart"))
		assert.Equal(t, "US", r.URL.Query().Get("regionCode"))
		assert.Equal(t, "10", r.URL.Query().Get("videoCategoryId"))
		fmt.Fprint(w, `{"items":[
			{"id":"v1","snippet":{"title":"First","channelTitle":"C1","thumbnails":{"medium":{"url":"t1"}}}},
			{"id":"v2","snippet":{"title":"Second","channelTitle":"C2","thumbnails":{"medium":{"url":"t2"}}}}
		]}`)
	}))
	defer srv.Close()

	videos, err := c.FetchTrending(context.Background(), "10", "")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, TrendingVideo{VideoID: "v1", Title: "First", Thumbnail: "t1", Channel: "C1"}, videos[0])
}
