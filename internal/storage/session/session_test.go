package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/storage/session"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	store := session.New(kvstore.NewMemory(), newNoopLogger())

	assert.Nil(t, store.Get(ctx))

	user := &models.User{UID: "uid-1", Name: "Ann", Email: "ann@x.com", Role: models.RoleReader}
	require.NoError(t, store.Set(ctx, user))

	got := store.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "uid-1", got.UID)
	assert.Equal(t, "ann@x.com", got.Email)

	require.NoError(t, store.Set(ctx, nil))
	assert.Nil(t, store.Get(ctx))
}

func TestStore_CorruptRecordYieldsNone(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, "session", []byte("{not json")))

	store := session.New(kv, newNoopLogger())
	assert.Nil(t, store.Get(ctx))
}
