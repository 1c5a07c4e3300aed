package timeutil

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClockBeforeEpoch 平台时钟早于 Unix 纪元，errors.Is 可匹配任意 *ClockError
	ErrClockBeforeEpoch = errors.New("clock reports a time before the unix epoch")

	// ErrOffsetOverflow 偏移量超出 uint64 表示范围（纳秒约在 2554 年溢出）
	ErrOffsetOverflow = errors.New("elapsed offset overflows uint64")
)

// ClockError 时钟读数早于参考纪元
type ClockError struct {
	Reading time.Time // 平台时钟的原始读数（UTC）
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("clock reading %s is %s before the unix epoch",
		e.Reading.Format(time.RFC3339Nano), Epoch.Sub(e.Reading))
}

// Is 使 errors.Is(err, ErrClockBeforeEpoch) 成立
func (e *ClockError) Is(target error) bool {
	return target == ErrClockBeforeEpoch
}
