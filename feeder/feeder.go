package feeder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedURL is the single source the relay ingests.
const FeedURL = "https://www.vg247.com/feed"

const FEEDER_TIMEOUT = 30 * time.Second

// rssUserAgent is sent because some CDNs reject the default Go client UA.
const rssUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// ErrUnexpectedStatus is returned when the feed endpoint answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected feed response status")

// Item is one parsed feed entry.
type Item struct {
	Title       string
	Link        string
	PublishedAt time.Time
	// Content is the raw HTML body of the item (description, or content:encoded when there is none).
	Content    string
	Categories []string
}

// Fetcher retrieves and parses one RSS/Atom feed.
type Fetcher struct {
	url    string
	client *http.Client
	parser *gofeed.Parser
}

// NewFetcher returns a Fetcher for url. A nil client gets a default one with FEEDER_TIMEOUT.
func NewFetcher(url string, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{
			Timeout: FEEDER_TIMEOUT,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				req.Header.Set("User-Agent", rssUserAgent)
				return nil
			},
		}
	}
	return &Fetcher{url: url, client: client, parser: gofeed.NewParser()}
}

// Fetch downloads the feed and returns its items in feed order.
func (f *Fetcher) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSS request: %w", err)
	}
	req.Header.Set("User-Agent", rssUserAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RSS feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodySample, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("%w: status code %d, url: %s, body: %s", ErrUnexpectedStatus, resp.StatusCode, f.url, string(bodySample))
	}

	cleanedReader, err := cleanControlCharacters(resp.Body)
	if err != nil {
		return nil, err
	}

	return f.parse(cleanedReader)
}

func (f *Fetcher) parse(r io.Reader) ([]Item, error) {
	feed, err := f.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		categories := make([]string, len(item.Categories))
		copy(categories, item.Categories)

		items = append(items, Item{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
			Content:     content,
			Categories:  categories,
		})
	}

	return items, nil
}

// invalidControlCharRegex covers 0x00-0x1F except tab, LF and CR, none of which XML allows.
var invalidControlCharRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

func cleanControlCharacters(r io.Reader) (io.Reader, error) {
	bodyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body for cleaning: %w", err)
	}

	cleanedBytes := invalidControlCharRegex.ReplaceAll(bodyBytes, []byte(""))

	return bytes.NewReader(cleanedBytes), nil
}
