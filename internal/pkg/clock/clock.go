package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is safe for use from concurrent use cases under test.
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}
