package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonpulse/webtoon-platform/internal/kvstore"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	_, found, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))

	val, found, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), val)

	require.NoError(t, store.Delete(ctx, "users"))

	_, found, err = store.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_DeleteMissingKey(t *testing.T) {
	store := kvstore.NewMemory()
	assert.NoError(t, store.Delete(context.Background(), "absent"))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	src := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "session", src))
	src[0] = 'X'

	val, found, err := store.Get(ctx, "session")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), val)

	val[0] = 'Y'
	again, _, err := store.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)
}
