package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	_, err := s.Load(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)

	payload := []byte(`{"items":[]}`)
	require.NoError(t, s.Save(ctx, "cart-storage", payload))
	payload[0] = 'x'

	got, err := s.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got))

	require.NoError(t, s.Delete(ctx, "cart-storage"))
	_, err = s.Load(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)
}
