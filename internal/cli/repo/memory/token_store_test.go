package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donee/internal/cli/repo"
)

func TestTokenStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, repo.ErrNoToken)

	require.NoError(t, s.Save(ctx, "T1"))
	require.NoError(t, s.Save(ctx, "T2"))
	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T2", tok)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, repo.ErrNoToken)
}
