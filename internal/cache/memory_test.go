package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cache:GET:/hotels", []byte(`[]`), 10*time.Second))

	got, err := s.Get(ctx, "cache:GET:/hotels")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	now = now.Add(10 * time.Second)
	_, err = s.Get(ctx, "cache:GET:/hotels")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_DeletePrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cache:a", []byte("1"), 0))
	require.NoError(t, s.Set(ctx, "cache:b", []byte("2"), 0))
	require.NoError(t, s.Set(ctx, "other", []byte("3"), 0))

	require.NoError(t, s.DeletePrefix(ctx, "cache:"))

	_, err := s.Get(ctx, "cache:a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = s.Get(ctx, "other")
	assert.NoError(t, err)
}

func TestMemoryStore_SetSweepsExpired(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("cache:GET:/hotels?page=%d", i), []byte(`[]`), 10*time.Second))
	}
	require.NoError(t, s.Set(ctx, "cache:GET:/facilities", []byte(`[]`), 0))
	assert.Equal(t, 1001, s.Len())

	now = now.Add(time.Hour)
	require.NoError(t, s.Set(ctx, "cache:GET:/hotels?page=1", []byte(`[]`), 10*time.Second))

	assert.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, "cache:GET:/facilities")
	assert.NoError(t, err)
}
