package logistics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	limiter := NewFixedWindowLimiter(2, time.Minute, clock)

	assert.True(t, limiter.Allow("a|b"))
	assert.True(t, limiter.Allow("a|b"))
	assert.False(t, limiter.Allow("a|b"), "third call in window")
	assert.True(t, limiter.Allow("a|c"), "keys are independent")

	now = now.Add(59 * time.Second)
	assert.False(t, limiter.Allow("a|b"))

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("a|b"), "new window")
}

func TestFixedWindowLimiter_Concurrent(t *testing.T) {
	limiter := NewFixedWindowLimiter(10, time.Minute, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("x|y") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
