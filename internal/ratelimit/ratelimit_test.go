package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clock is a controllable time source for limiter tests.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(max int, window time.Duration) (*Limiter, *clock) {
	l := New(max, window)
	c := newClock()
	l.now = c.now
	return l, c
}

func TestAllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(2, time.Second)

	assert.True(t, l.Allow("appointment_+919492309305"))
	assert.True(t, l.Allow("appointment_+919492309305"))
	assert.False(t, l.Allow("appointment_+919492309305"))
}

func TestAllowAfterWindowElapses(t *testing.T) {
	l, c := newTestLimiter(2, time.Second)

	assert.True(t, l.Allow("id"))
	assert.True(t, l.Allow("id"))
	assert.False(t, l.Allow("id"))

	c.advance(1100 * time.Millisecond)
	assert.True(t, l.Allow("id"))
}

func TestDeniedRequestNotRecorded(t *testing.T) {
	l, c := newTestLimiter(1, time.Second)

	assert.True(t, l.Allow("id"))
	// Hammering while saturated must not push the reset time out.
	for i := 0; i < 5; i++ {
		assert.False(t, l.Allow("id"))
		c.advance(100 * time.Millisecond)
	}
	c.advance(600 * time.Millisecond) // oldest is now 1.1s old
	assert.True(t, l.Allow("id"))
}

func TestIdentifiersIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Second)

	assert.True(t, l.Allow("appointment_1.2.3.4_+911111111111"))
	assert.False(t, l.Allow("appointment_1.2.3.4_+911111111111"))
	assert.True(t, l.Allow("appointment_1.2.3.4_+912222222222"))
	assert.True(t, l.Allow("appointment_5.6.7.8_+911111111111"))
}

func TestRemainingTime(t *testing.T) {
	l, c := newTestLimiter(2, 10*time.Minute)

	assert.Equal(t, time.Duration(0), l.RemainingTime("id"))

	assert.True(t, l.Allow("id"))
	assert.Equal(t, time.Duration(0), l.RemainingTime("id"))

	assert.True(t, l.Allow("id"))
	assert.Equal(t, 10*time.Minute, l.RemainingTime("id"))

	c.advance(4 * time.Minute)
	assert.Equal(t, 6*time.Minute, l.RemainingTime("id"))

	c.advance(7 * time.Minute)
	assert.Equal(t, time.Duration(0), l.RemainingTime("id"))
	assert.True(t, l.Allow("id"))
}

func TestConcurrentAccess(t *testing.T) {
	l := New(50, time.Minute)

	var wg sync.WaitGroup
	allowed := make([]bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed[i] = l.Allow("shared")
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 50, count)
}
