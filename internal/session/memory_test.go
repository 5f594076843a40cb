package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	id, err := store.Create(ctx, Credentials{Token: "tok-1", Username: "service_1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	creds, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Credentials{Token: "tok-1", Username: "service_1"}, creds)
	assert.True(t, creds.Authenticated())

	require.NoError(t, store.Delete(ctx, id))

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(20 * time.Millisecond)

	id, err := store.Create(ctx, Credentials{Token: "tok", Username: "u"})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	_, err := NewMemoryStore(time.Hour).Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
