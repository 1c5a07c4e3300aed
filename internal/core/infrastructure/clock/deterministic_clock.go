package clock

import (
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
)

// DeterministicClock 基于固定基准时间和递增序列，提供确定性时间源
// 每次读取推进 1ms，相同调用序列产生相同读数
type DeterministicClock struct {
	baseTime time.Time
	sequence atomic.Int64
}

func NewDeterministicClock(base time.Time) *DeterministicClock {
	return &DeterministicClock{baseTime: base}
}

func (c *DeterministicClock) Now() time.Time {
	seq := c.sequence.Add(1)
	return c.baseTime.Add(time.Duration(seq) * time.Millisecond)
}

func (c *DeterministicClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *DeterministicClock) Unix() int64                     { return c.Now().Unix() }
func (c *DeterministicClock) UnixNano() int64                 { return c.Now().UnixNano() }

var _ infraClock.Clock = (*DeterministicClock)(nil)
