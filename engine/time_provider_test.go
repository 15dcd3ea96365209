package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMockTimeProvider(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewMockTimeProvider(start)

	// Frozen until moved
	require.Equal(t, start, clock.Now())
	require.Equal(t, start, clock.Now())

	clock.Advance(time.Second)
	require.Equal(t, start.Add(time.Second), clock.Now())

	jump := time.Unix(5000, 0)
	clock.Set(jump)
	require.Equal(t, jump, clock.Now())
}

func TestMonotonicTimeProvider(t *testing.T) {
	clock := NewMonotonicTimeProvider()
	a := clock.Now()
	b := clock.Now()
	require.False(t, b.Before(a))
}
