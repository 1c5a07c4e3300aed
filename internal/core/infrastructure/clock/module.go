// Package clock 提供时钟实现与纪元偏移读取服务
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	clockconfig "github.com/weisyn/timetools/internal/config/clock"
	"github.com/weisyn/timetools/internal/core/infrastructure/log"
	"github.com/weisyn/timetools/pkg/interfaces/config"
	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/timetools/pkg/utils/timeutil"
	"go.uber.org/fx"
)

// ModuleParams 定义时钟模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Provider   config.Provider
	Logger     logInterface.Logger   `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// ModuleOutput 定义时钟模块的输出结构
type ModuleOutput struct {
	fx.Out

	Clock      infraClock.Clock
	Reader     infraClock.Reader
	ReaderImpl *Reader
	NTPClock   *NTPClock // 仅 type=ntp 时非 nil
}

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(ProvideServices),
	)
}

// NewClock 按配置创建时钟；未知类型回退到系统时钟
func NewClock(opts *clockconfig.ClockOptions, logger logInterface.Logger) (infraClock.Clock, error) {
	switch opts.Type {
	case clockconfig.TypeSystem, "":
		return NewSystemClock(), nil
	case clockconfig.TypeNTP:
		c, err := NewNTPClock(opts.NTPServer, opts.SyncInterval,
			WithBackoff(opts.BackoffInitial, opts.BackoffMax),
			WithOffsetThreshold(opts.OffsetThreshold),
			WithQueryTimeout(opts.QueryTimeout),
			WithNTPLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case clockconfig.TypeDeterministic:
		return NewDeterministicClock(time.Unix(opts.DeterministicBaseUnix, 0)), nil
	case clockconfig.TypeMock:
		return NewMockClock(time.Unix(opts.DeterministicBaseUnix, 0)), nil
	default:
		if logger != nil {
			logger.Warnf("未知的时钟类型 %q，回退到系统时钟", opts.Type)
		}
		return NewSystemClock(), nil
	}
}

// ProvideServices 提供时钟与 Reader，并把时钟注入 timeutil 的全局时间源
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	opts := params.Provider.GetClock()

	base := params.Logger
	if base == nil {
		base = log.GetLogger()
	}
	logger := log.NewModuleLogger(base, "clock")
	if logger != nil {
		for _, envErr := range opts.EnvErrors {
			logger.Warnf("%v", envErr)
		}
	}

	clockService, err := NewClock(opts, logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建时钟失败: %w", err)
	}

	readerOpts := []ReaderOption{WithDefaultUnit(opts.DefaultUnit)}
	if logger != nil {
		readerOpts = append(readerOpts, WithReaderLogger(logger))
	}
	if params.Registerer != nil {
		readerOpts = append(readerOpts, WithRegisterer(params.Registerer))
	}
	reader := NewReader(clockService, readerOpts...)

	ntpClock, _ := clockService.(*NTPClock)
	if ntpClock != nil && params.Registerer != nil {
		if err := RegisterClockMetrics(params.Registerer, ntpClock.Health); err != nil && logger != nil {
			logger.Warnf("注册NTP时钟指标失败: %v", err)
		}
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			timeutil.SetClock(clockService)
			if ntpClock != nil {
				ntpClock.Start()
			}
			if logger != nil {
				logger.Debugf("时钟模块已启动 type=%s default_unit=%s", opts.Type, opts.DefaultUnit)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			if ntpClock != nil {
				ntpClock.Stop()
			}
			timeutil.ResetClock()
			return nil
		},
	})

	return ModuleOutput{
		Clock:      clockService,
		Reader:     reader,
		ReaderImpl: reader,
		NTPClock:   ntpClock,
	}, nil
}
