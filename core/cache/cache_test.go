package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndClaim(t *testing.T) {
	s := NewStore(5)

	files := []Entry{{Name: "a.csv", Content: []byte("Name\nAnn\n")}}
	token := s.Put(files)
	require.NotEmpty(t, token)
	assert.Equal(t, 1, s.Len())

	got, ok := s.Claim(token)
	require.True(t, ok)
	assert.Equal(t, files, got)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ClaimConsumesToken(t *testing.T) {
	s := NewStore(5)
	token := s.Put([]Entry{{Name: "a.csv"}})

	_, ok := s.Claim(token)
	require.True(t, ok)

	// A second claim on the same token always misses
	_, ok = s.Claim(token)
	assert.False(t, ok)
}

func TestStore_ClaimUnknownToken(t *testing.T) {
	s := NewStore(5)
	_, ok := s.Claim("no-such-token")
	assert.False(t, ok)
}

func TestStore_EvictsOldestFirst(t *testing.T) {
	s := NewStore(3)

	var tokens []string
	for i := 0; i < 4; i++ {
		tokens = append(tokens, s.Put([]Entry{{Name: fmt.Sprintf("f%d.csv", i)}}))
	}

	assert.Equal(t, 3, s.Len())

	_, ok := s.Claim(tokens[0])
	assert.False(t, ok, "oldest entry should have been evicted")

	for _, token := range tokens[1:] {
		got, ok := s.Claim(token)
		require.True(t, ok)
		require.Len(t, got, 1)
	}
}

func TestNewStore_MinimumCapacity(t *testing.T) {
	s := NewStore(0)

	first := s.Put([]Entry{{Name: "a.csv"}})
	second := s.Put([]Entry{{Name: "b.csv"}})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Claim(first)
	assert.False(t, ok)
	_, ok = s.Claim(second)
	assert.True(t, ok)
}
