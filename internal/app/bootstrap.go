package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/weisyn/timetools/configs"
	config "github.com/weisyn/timetools/internal/config"
	"github.com/weisyn/timetools/internal/core/infrastructure/clock"
	log "github.com/weisyn/timetools/internal/core/infrastructure/log"
	configInterface "github.com/weisyn/timetools/pkg/interfaces/config"
	"github.com/weisyn/timetools/pkg/types"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts *options
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// loadAppConfig 解析用户配置：显式配置 > 配置文件 > 内置环境配置 > 默认值，再叠加命令行覆盖
func (b *Bootstrap) loadAppConfig() (*types.AppConfig, error) {
	appConfig := b.opts.appConfig
	switch {
	case appConfig != nil:
	case b.opts.configFilePath == "" && b.opts.environment != "":
		data, err := configs.GetConfig(b.opts.environment)
		if err != nil {
			return nil, err
		}
		if appConfig, err = config.ParseAppConfig(data); err != nil {
			return nil, fmt.Errorf("解析内置配置 %s 失败: %w", b.opts.environment, err)
		}
	default:
		loaded, err := config.LoadAppConfig(b.opts.configFilePath)
		if err != nil {
			return nil, err
		}
		appConfig = loaded
	}

	if b.opts.logLevel != "" {
		cloned := *appConfig
		logCfg := types.UserLogConfig{}
		if cloned.Log != nil {
			logCfg = *cloned.Log
		}
		logCfg.Level = types.StringPtr(string(b.opts.logLevel))
		cloned.Log = &logCfg
		appConfig = &cloned
	}
	return appConfig, nil
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		config.Module(), // 1. 配置(不依赖其他)
		log.Module(),    // 2. 日志(依赖配置)
		clock.Module(),  // 3. 时钟(依赖配置和日志)
	}
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() (*fx.App, error) {
	appConfig, err := b.loadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	b.opts.appConfig = appConfig

	appOptions := []fx.Option{
		fx.Provide(func() configInterface.AppOptions { return b.opts }),
		fx.Options(b.SetupInfrastructureLayer()...),

		// fx 内部事件以 debug 级别写入应用日志
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			logger := &fxevent.ZapLogger{Logger: l.Named("fx")}
			logger.UseLogLevel(zapcore.DebugLevel)
			return logger
		}),
	}

	if b.opts.registerer != nil {
		reg := b.opts.registerer
		appOptions = append(appOptions, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	appOptions = append(appOptions, b.opts.extra...)

	return fx.New(appOptions...), nil
}
