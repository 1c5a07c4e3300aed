package clock

import (
	"sync"
	"time"

	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
)

// MockClock 测试用时钟，时间可控，允许设置为纪元之前
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(initial time.Time) *MockClock { return &MockClock{currentTime: initial} }

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *MockClock) Unix() int64                     { return c.Now().Unix() }
func (c *MockClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Set 设置当前时间
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
}

// Advance 推进时间（d 为负时回拨）
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}

// Ensure接口实现满足 infraClock.Clock
var _ infraClock.Clock = (*MockClock)(nil)
