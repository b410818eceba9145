package feeder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-relay/feeder"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>VG247</title>
    <link>https://www.vg247.com</link>
    <description>Games news</description>
    <item>
      <title>Patch 1.2 is live` + "\x1b" + `</title>
      <link>https://www.vg247.com/patch-1-2</link>
      <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
      <description><![CDATA[<p><img alt="hero" src="https://assets.example/hero.jpg"></p>]]></description>
      <category>News</category>
      <category>PC</category>
    </item>
    <item>
      <title>Only encoded content</title>
      <link>https://www.vg247.com/encoded</link>
      <pubDate>Thu, 01 Feb 2024 08:30:00 GMT</pubDate>
      <content:encoded><![CDATA[<img src="https://assets.example/encoded.jpg">]]></content:encoded>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, testRSS)

	items, err := feeder.NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "Patch 1.2 is live", first.Title)
	assert.Equal(t, "https://www.vg247.com/patch-1-2", first.Link)
	assert.True(t, first.PublishedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.Contains(t, first.Content, `src="https://assets.example/hero.jpg"`)
	assert.Equal(t, []string{"News", "PC"}, first.Categories)

	second := items[1]
	assert.Equal(t, "Only encoded content", second.Title)
	assert.Contains(t, second.Content, "encoded.jpg")
	assert.NotNil(t, second.Categories)
	assert.Empty(t, second.Categories)
}

func TestFetchUnexpectedStatus(t *testing.T) {
	srv := newFeedServer(t, http.StatusServiceUnavailable, "maintenance")

	_, err := feeder.NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, feeder.ErrUnexpectedStatus)
}

func TestFetchInvalidFeed(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, "this is not a feed")

	_, err := feeder.NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchCanceledContext(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, testRSS)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := feeder.NewFetcher(srv.URL, srv.Client()).Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
