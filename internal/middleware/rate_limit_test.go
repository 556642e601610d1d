package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenBucket_ExhaustsAndRefills(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	for i := 0; i < 3; i++ {
		require.True(t, tb.Allow(), "request %d should pass", i)
	}
	require.False(t, tb.Allow(), "bucket should be empty")
}

func TestTokenBucket_CapacityCap(t *testing.T) {
	tb := NewTokenBucket(2, 100)
	// 人为把上次补充时间拨回去，验证补充不会超过容量
	tb.mu.Lock()
	tb.tokens = 0
	tb.lastRefill = tb.lastRefill.Add(-10 * time.Second)
	tb.mu.Unlock()

	require.True(t, tb.Allow())
	require.True(t, tb.Allow())
	require.False(t, tb.Allow())
}
