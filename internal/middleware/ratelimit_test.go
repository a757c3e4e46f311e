package middleware

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)

	assert.True(t, rl.Allow("alice"))
	assert.True(t, rl.Allow("alice"))
	assert.False(t, rl.Allow("alice"), "burst exhausted")

	assert.True(t, rl.Allow("bob"), "callers have separate buckets")
}

func TestRateLimiter_ResetsWhenFull(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	for i := 0; i < maxLimiters; i++ {
		rl.limiter(strconv.Itoa(i))
	}
	assert.Len(t, rl.limiters, maxLimiters)

	rl.limiter("one-more")
	assert.Len(t, rl.limiters, 1)
}
