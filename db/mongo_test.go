package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-relay/config"
)

func unreachable() config.MongoConfig {
	return config.MongoConfig{
		URI:            "mongodb://127.0.0.1:1/",
		Database:       "blogDB",
		Collection:     "blogposts",
		ConnectTimeout: 300 * time.Millisecond,
	}
}

func TestOpenDoesNotWaitForServer(t *testing.T) {
	start := time.Now()
	m, err := Open(unreachable())
	require.NoError(t, err)
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, "blogposts", m.Collection().Name())
	assert.Equal(t, "blogDB", m.Database.Name())
}

func TestBootstrapIsBoundedByConnectTimeout(t *testing.T) {
	m, err := Open(unreachable())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })

	start := time.Now()
	err = m.Bootstrap(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPingFailsFastWhenServerIsDown(t *testing.T) {
	m, err := Open(unreachable())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Disconnect(context.Background()) })

	start := time.Now()
	assert.Error(t, m.Ping(context.Background()))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOpenRejectsMalformedURI(t *testing.T) {
	cfg := unreachable()
	cfg.URI = "not-a-mongo-uri"

	m, err := Open(cfg)
	assert.Error(t, err)
	assert.Nil(t, m)
}
