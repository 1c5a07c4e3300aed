package clock

import (
	"time"

	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/timetools/pkg/utils/timeutil"
)

// SystemClock 使用平台墙上时钟（不携带单调时钟读数）
type SystemClock struct{}

func NewSystemClock() *SystemClock { return &SystemClock{} }

func (c *SystemClock) Now() time.Time {
	sec, nsec := timeutil.Walltime()
	return time.Unix(sec, int64(nsec))
}

func (c *SystemClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *SystemClock) Unix() int64                     { return c.Now().Unix() }
func (c *SystemClock) UnixNano() int64                 { return c.Now().UnixNano() }

var _ infraClock.Clock = (*SystemClock)(nil)
