package clock

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/timetools/pkg/types"
	"github.com/weisyn/timetools/pkg/utils/timeutil"
)

// Reader 在给定时钟上计算距 Unix 纪元的偏移量
// 每次调用只采样一次时钟；时钟早于纪元时返回 *timeutil.ClockError
type Reader struct {
	clock       infraClock.Clock
	logger      logInterface.Logger
	defaultUnit types.TimeUnit
	reads       *prometheus.CounterVec
}

// ReaderOption Reader 可选项
type ReaderOption func(*Reader)

// WithReaderLogger 读取失败时记录日志
func WithReaderLogger(l logInterface.Logger) ReaderOption {
	return func(r *Reader) { r.logger = l }
}

// WithDefaultUnit 设置 NowDefault 使用的单位
func WithDefaultUnit(u types.TimeUnit) ReaderOption {
	return func(r *Reader) { r.defaultUnit = u }
}

// WithRegisterer 在 reg 中注册读取计数器
func WithRegisterer(reg prometheus.Registerer) ReaderOption {
	return func(r *Reader) {
		if counter, err := registerCounter(reg, r.reads); err == nil {
			r.reads = counter
		} else if r.logger != nil {
			r.logger.Warnf("注册时钟读取指标失败: %v", err)
		}
	}
}

// NewReader 创建 Reader，c 为 nil 时使用平台时钟
func NewReader(c infraClock.Clock, opts ...ReaderOption) *Reader {
	if c == nil {
		c = NewSystemClock()
	}
	r := &Reader{
		clock:       c,
		defaultUnit: types.Millis,
		reads:       newReadsCounter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clock 返回底层时钟
func (r *Reader) Clock() infraClock.Clock { return r.clock }

// DefaultUnit 返回默认单位
func (r *Reader) DefaultUnit() types.TimeUnit { return r.defaultUnit }

// Now 返回距纪元的毫秒数
func (r *Reader) Now() (uint64, error) {
	return r.NowAs(types.Millis)
}

// NowDefault 以默认单位返回偏移量
func (r *Reader) NowDefault() (uint64, error) {
	return r.NowAs(r.defaultUnit)
}

// NowAs 返回距纪元的偏移量，单位由调用方指定
// 单位非法时不读取时钟
func (r *Reader) NowAs(unit types.TimeUnit) (uint64, error) {
	if !unit.Valid() {
		err := fmt.Errorf("%w: %d", types.ErrInvalidTimeUnit, uint8(unit))
		r.observe(unit, err)
		return 0, err
	}
	v, err := timeutil.Elapsed(r.clock.Now(), unit)
	r.observe(unit, err)
	return v, err
}

// NowAll 单次采样换算出全部单位
func (r *Reader) NowAll() (types.Offsets, error) {
	o, err := timeutil.ElapsedAll(r.clock.Now())
	for _, unit := range types.AllTimeUnits {
		r.observe(unit, err)
	}
	return o, err
}

func (r *Reader) observe(unit types.TimeUnit, err error) {
	unitLabel := unit.String()
	if !unit.Valid() {
		unitLabel = "invalid"
	}
	r.reads.WithLabelValues(unitLabel, resultLabel(err)).Inc()

	if err != nil && r.logger != nil {
		r.logger.With("unit", unitLabel).Errorf("读取时钟失败: %v", err)
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, timeutil.ErrClockBeforeEpoch):
		return "before_epoch"
	case errors.Is(err, timeutil.ErrOffsetOverflow):
		return "overflow"
	case errors.Is(err, types.ErrInvalidTimeUnit):
		return "invalid_unit"
	default:
		return "error"
	}
}

var _ infraClock.Reader = (*Reader)(nil)
