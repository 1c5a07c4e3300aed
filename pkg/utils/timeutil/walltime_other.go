//go:build !linux && !darwin && !freebsd

package timeutil

import "time"

// Walltime 读取平台墙上时钟
func Walltime() (sec int64, nsec int32) {
	t := time.Now()
	return t.Unix(), int32(t.Nanosecond())
}
