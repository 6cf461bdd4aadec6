package m

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(s *KeyedSource, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.Uint64()
	}
	return out
}

func TestKeyedSource(t *testing.T) {
	a, err := NewKeyedSource([]byte("key"))
	require.NoError(t, err)
	b, err := NewKeyedSource([]byte("key"))
	require.NoError(t, err)
	c, err := NewKeyedSource([]byte("other"))
	require.NoError(t, err)

	first := draws(a, 16)
	assert.Equal(t, first, draws(b, 16))
	assert.NotEqual(t, first, draws(c, 16))
	assert.NotEqual(t, first, draws(a, 16), "stream advances")
}

func TestKeyedSourceSeed(t *testing.T) {
	a, err := NewKeyedSource([]byte("key"))
	require.NoError(t, err)
	b, err := NewKeyedSource(nil)
	require.NoError(t, err)

	a.Seed(99)
	b.Seed(99)
	assert.Equal(t, draws(a, 8), draws(b, 8))

	a.Seed(100)
	b.Seed(99)
	assert.NotEqual(t, draws(a, 8), draws(b, 8))
}
