package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCodeStoreRoundTrip(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, "482913", CodeTTL))

	code, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "482913", code)

	require.NoError(t, store.Delete(ctx, 1))

	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestMemoryCodeStoreExpiry(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 7, "111111", -time.Second))

	_, err := store.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestMemoryCodeStoreIsolatedPerBuyer(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, "111111", CodeTTL))
	require.NoError(t, store.Set(ctx, 2, "222222", CodeTTL))
	require.NoError(t, store.Delete(ctx, 1))

	code, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestGenerateCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
