package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-relay/feeder"
	"blog-relay/internal/logger"
	"blog-relay/models"
	"blog-relay/parser"
	"blog-relay/services"
	"blog-relay/services/servicestest"
)

type stubFetcher struct {
	items []feeder.Item
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context) ([]feeder.Item, error) {
	f.calls++
	return f.items, f.err
}

func newIngestion(store services.BlogPostStore, fetcher services.FeedFetcher) *services.IngestionService {
	return services.NewIngestionService(store, fetcher, parser.NewImageExtractor("pattern"), logger.Nop())
}

func TestIngestInsertsNewItemsAsDrafts(t *testing.T) {
	pub := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{items: []feeder.Item{
		{
			Title:       "Elden Ring DLC dated",
			Link:        "https://www.vg247.com/elden-ring-dlc",
			PublishedAt: pub,
			Content:     `<p><img alt="x" src="https://img.example/er.jpg"><img src="https://img.example/second.jpg"></p>`,
			Categories:  []string{"News", "Bandai Namco"},
		},
		{
			Title:       "No picture today",
			Link:        "https://www.vg247.com/no-picture",
			PublishedAt: pub.Add(time.Hour),
			Content:     "<p>just text</p>",
		},
	}}
	store := servicestest.NewMemoryStore()

	res, err := newIngestion(store, fetcher).Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, services.IngestResult{Fetched: 2, Inserted: 2}, res)

	withImage := store.ByTitle("Elden Ring DLC dated")
	require.NotNil(t, withImage)
	assert.Equal(t, "https://img.example/er.jpg", withImage.ImageURL)
	assert.Equal(t, "https://www.vg247.com/elden-ring-dlc", withImage.ArticleLink)
	assert.True(t, withImage.PubDate.Equal(pub))
	assert.Equal(t, []string{"News", "Bandai Namco"}, withImage.Categories)
	assert.Equal(t, models.StatusDraft, withImage.Status)

	withoutImage := store.ByTitle("No picture today")
	require.NotNil(t, withoutImage)
	assert.Equal(t, "", withoutImage.ImageURL)
	assert.NotNil(t, withoutImage.Categories)
	assert.Equal(t, models.StatusDraft, withoutImage.Status)
}

func TestIngestSkipsExistingTitles(t *testing.T) {
	existing := models.BlogPost{Title: "Already here", Status: models.StatusPublished}
	store := servicestest.NewMemoryStore(existing)
	fetcher := &stubFetcher{items: []feeder.Item{
		{Title: "Already here", Link: "https://www.vg247.com/again", Content: `<img src="https://img.example/new.jpg">`},
	}}

	res, err := newIngestion(store, fetcher).Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, services.IngestResult{Fetched: 1, Skipped: 1}, res)

	posts := store.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, models.StatusPublished, posts[0].Status)
	assert.Equal(t, "", posts[0].ImageURL)
}

func TestIngestTwiceDoesNotDuplicate(t *testing.T) {
	store := servicestest.NewMemoryStore()
	fetcher := &stubFetcher{items: []feeder.Item{
		{Title: "A"}, {Title: "B"},
	}}
	svc := newIngestion(store, fetcher)

	require.NoError(t, svc.Run(context.Background()))
	require.NoError(t, svc.Run(context.Background()))

	assert.Len(t, store.Posts(), 2)
	assert.Equal(t, 2, fetcher.calls)
}

func TestIngestFetchErrorEndsRun(t *testing.T) {
	store := servicestest.NewMemoryStore()
	fetchErr := errors.New("feed down")

	err := newIngestion(store, &stubFetcher{err: fetchErr}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Empty(t, store.Posts())
}

func TestIngestStoreErrorStopsRemainingItems(t *testing.T) {
	insertErr := errors.New("write failed")
	store := servicestest.NewMemoryStore()
	store.InsertErr = insertErr
	store.InsertErrAfter = 1
	fetcher := &stubFetcher{items: []feeder.Item{
		{Title: "first"}, {Title: "second"}, {Title: "third"},
	}}

	res, err := newIngestion(store, fetcher).Ingest(context.Background())
	assert.ErrorIs(t, err, insertErr)
	assert.Equal(t, 1, res.Inserted)

	posts := store.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "first", posts[0].Title)
}

func TestIngestLookupErrorEndsRun(t *testing.T) {
	lookupErr := errors.New("find failed")
	store := servicestest.NewMemoryStore()
	store.Err = lookupErr

	err := newIngestion(store, &stubFetcher{items: []feeder.Item{{Title: "x"}}}).Run(context.Background())
	assert.ErrorIs(t, err, lookupErr)
}

func TestIngestUsesConfiguredExtractor(t *testing.T) {
	store := servicestest.NewMemoryStore()
	fetcher := &stubFetcher{items: []feeder.Item{
		{Title: "quoted", Content: `<img src='https://img.example/single.jpg'>`},
	}}
	svc := services.NewIngestionService(store, fetcher, parser.NewImageExtractor("markup"), logger.Nop())

	require.NoError(t, svc.Run(context.Background()))
	p := store.ByTitle("quoted")
	require.NotNil(t, p)
	assert.Equal(t, "https://img.example/single.jpg", p.ImageURL)
}
