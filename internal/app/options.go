package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/weisyn/timetools/pkg/interfaces/config"
	"github.com/weisyn/timetools/pkg/types"
	"go.uber.org/fx"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 内置环境配置名称（configFilePath 为空时生效）
	environment string

	// 用户配置（优先级高于configFilePath）
	appConfig *types.AppConfig

	// 日志级别覆盖（命令行 --log-level）
	logLevel types.LogLevel

	// 指标注册表，nil 时不注册指标
	registerer prometheus.Registerer

	// 额外的 fx 选项（测试或嵌入方使用）
	extra []fx.Option
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEnvironment 使用内置的环境配置（development|testing|production）
func WithEnvironment(env string) Option {
	return func(o *options) {
		o.environment = env
	}
}

// WithAppConfig 直接使用已构造的用户配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithLogLevel 覆盖日志级别
func WithLogLevel(level types.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithRegisterer 设置 Prometheus 注册表
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithFxOptions 追加 fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, opts...)
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 获取应用配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
