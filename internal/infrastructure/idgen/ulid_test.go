package idgen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_Generate(t *testing.T) {
	gen := NewULIDGenerator()

	a := gen.Generate()
	b := gen.Generate()

	assert.NotEqual(t, a, b)

	parsed, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, a, parsed.String())
}

func TestULIDGenerator_PinnedSource(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }

	first := NewULIDGeneratorWithSource(clock, ulid.Monotonic(rand.New(rand.NewSource(7)), 0))
	second := NewULIDGeneratorWithSource(clock, ulid.Monotonic(rand.New(rand.NewSource(7)), 0))

	a1, a2 := first.Generate(), first.Generate()
	assert.Equal(t, a1, second.Generate())
	assert.Equal(t, a2, second.Generate())

	// Same millisecond: the monotonic source keeps ids strictly increasing.
	assert.Less(t, a1, a2)

	parsed, err := ulid.Parse(a1)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())
}
