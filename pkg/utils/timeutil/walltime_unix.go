//go:build linux || darwin || freebsd

package timeutil

import (
	"time"

	"golang.org/x/sys/unix"
)

// Walltime 通过 clock_gettime(CLOCK_REALTIME) 读取平台墙上时钟
// 系统调用失败时回退到 time.Now
func Walltime() (sec int64, nsec int32) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		t := time.Now()
		return t.Unix(), int32(t.Nanosecond())
	}
	s, n := ts.Unix()
	return s, int32(n)
}
