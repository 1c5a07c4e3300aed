package log

import (
	"context"
	"fmt"

	logconfig "github.com/weisyn/timetools/internal/config/log"
	"github.com/weisyn/timetools/pkg/interfaces/config"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型（供 fxevent 等需要 zap 的组件使用）
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化日志记录器并返回
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromProvider(params.Provider))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	// 设置为全局记录器，替换掉init()时用默认配置创建的日志器
	SetLogger(logger)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stderr 不支持 fsync，忽略同步错误
			_ = logger.Sync()
			return nil
		},
	})

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger 创建带 module 字段的 logger
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return nil
	}
	return baseLogger.With("module", module)
}
