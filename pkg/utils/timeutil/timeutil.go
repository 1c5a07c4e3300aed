// Package timeutil provides time utility functions.
//
// Now/NowAs 对平台墙上时钟采样一次，并换算为距 Unix 纪元的偏移量。
// 时钟早于纪元时返回 *ClockError（可恢复策略，全包统一），由调用方决定如何处理。
package timeutil

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/timetools/pkg/types"
)

// EpochUnix 参考纪元（1970-01-01T00:00:00Z）的 Unix 秒
const EpochUnix int64 = 0

// Epoch 参考纪元
var Epoch = time.Unix(EpochUnix, 0).UTC()

const (
	nanosPerMicro = 1_000
	nanosPerMilli = 1_000_000
	nanosPerSec   = 1_000_000_000
)

// walltime 返回墙上时间：秒 + [0, 1e9) 纳秒
type walltime func() (sec int64, nsec int32)

var nowProvider atomic.Pointer[walltime]

func init() {
	ResetClock()
}

// SetClock 设置时间提供者（由基础设施注入），传入 nil 时保持不变
func SetClock(c infraClock.Clock) {
	if c == nil {
		return
	}
	fn := walltime(func() (int64, int32) {
		t := c.Now()
		return t.Unix(), int32(t.Nanosecond())
	})
	nowProvider.Store(&fn)
}

// ResetClock 恢复为平台时钟
func ResetClock() {
	fn := walltime(Walltime)
	nowProvider.Store(&fn)
}

func sample() (int64, int32) {
	return (*nowProvider.Load())()
}

// Now 返回距纪元的毫秒数（截断）
func Now() (uint64, error) {
	return NowAs(types.Millis)
}

// NowAs 返回距纪元的偏移量，单位由调用方指定
func NowAs(unit types.TimeUnit) (uint64, error) {
	if !unit.Valid() {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidTimeUnit, uint8(unit))
	}
	sec, nsec := sample()
	return convert(sec, nsec, unit)
}

// NowAll 单次采样，换算出全部单位
func NowAll() (types.Offsets, error) {
	sec, nsec := sample()
	return offsets(sec, nsec)
}

// Elapsed 计算 t 距纪元的偏移量（只做换算，不读时钟）
func Elapsed(t time.Time, unit types.TimeUnit) (uint64, error) {
	if !unit.Valid() {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidTimeUnit, uint8(unit))
	}
	return convert(t.Unix(), int32(t.Nanosecond()), unit)
}

// ElapsedAll 计算 t 距纪元的全部单位偏移量
func ElapsedAll(t time.Time) (types.Offsets, error) {
	return offsets(t.Unix(), int32(t.Nanosecond()))
}

func offsets(sec int64, nsec int32) (types.Offsets, error) {
	var o types.Offsets
	var err error
	if o.Millis, err = convert(sec, nsec, types.Millis); err != nil {
		return types.Offsets{}, err
	}
	if o.Nanos, err = convert(sec, nsec, types.Nanos); err != nil {
		return types.Offsets{}, err
	}
	if o.Micros, err = convert(sec, nsec, types.Micros); err != nil {
		return types.Offsets{}, err
	}
	if o.Sec, err = convert(sec, nsec, types.Sec); err != nil {
		return types.Offsets{}, err
	}
	return o, nil
}

// convert 要求 nsec 位于 [0, 1e9)，time.Time 与 clock_gettime 均满足
func convert(sec int64, nsec int32, unit types.TimeUnit) (uint64, error) {
	if sec < EpochUnix {
		return 0, &ClockError{Reading: time.Unix(sec, int64(nsec)).UTC()}
	}
	s, n := uint64(sec-EpochUnix), uint64(nsec)

	var perSec, frac uint64
	switch unit {
	case types.Millis:
		perSec, frac = 1_000, n/nanosPerMilli
	case types.Micros:
		perSec, frac = 1_000_000, n/nanosPerMicro
	case types.Nanos:
		perSec, frac = nanosPerSec, n
	case types.Sec:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidTimeUnit, uint8(unit))
	}

	if s > (math.MaxUint64-frac)/perSec {
		return 0, fmt.Errorf("%w: %d s in %s", ErrOffsetOverflow, sec, unit)
	}
	return s*perSec + frac, nil
}
