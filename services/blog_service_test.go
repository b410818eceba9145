package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-relay/internal/logger"
	"blog-relay/models"
	"blog-relay/services"
	"blog-relay/services/servicestest"
)

func TestListPublishedNeverReturnsDrafts(t *testing.T) {
	store := servicestest.NewMemoryStore(
		models.BlogPost{Title: "draft", Status: models.StatusDraft},
		models.BlogPost{Title: "live", Status: models.StatusPublished, Categories: []string{"News"}},
	)

	out, err := services.NewBlogService(store).ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "live", out[0].Title)
	assert.Equal(t, "published", out[0].Status)
	assert.Equal(t, []string{"News"}, out[0].Categories)
}

func TestListPublishedEmptyIsNotNil(t *testing.T) {
	out, err := services.NewBlogService(servicestest.NewMemoryStore()).ListPublished(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListPublishedStoreError(t *testing.T) {
	store := servicestest.NewMemoryStore()
	store.Err = errors.New("boom")

	_, err := services.NewBlogService(store).ListPublished(context.Background())
	assert.Error(t, err)
}

// drafts A(2024-01-01) and B(2024-02-01); one publication run; /blogs source returns exactly [A]
func TestPublicationThenListScenario(t *testing.T) {
	store := servicestest.NewMemoryStore(
		models.BlogPost{Title: "A", PubDate: day(2024, 1, 1), Status: models.StatusDraft},
		models.BlogPost{Title: "B", PubDate: day(2024, 2, 1), Status: models.StatusDraft},
	)

	require.NoError(t, services.NewPublicationService(store, logger.Nop()).Run(context.Background()))

	out, err := services.NewBlogService(store).ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, models.StatusDraft, store.ByTitle("B").Status)
}
