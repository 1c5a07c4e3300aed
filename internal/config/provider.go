package config

import (
	"github.com/weisyn/timetools/internal/config/clock"
	"github.com/weisyn/timetools/internal/config/log"
	"github.com/weisyn/timetools/pkg/interfaces/config"
	"github.com/weisyn/timetools/pkg/types"
)

const defaultAppName = "timetools"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig != nil && p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil && p.appConfig.Log != nil {
		userLogConfig = p.appConfig.Log
	}

	return log.New(userLogConfig).GetOptions()
}

// GetClock 获取时钟配置
func (p *Provider) GetClock() *clock.ClockOptions {
	var userClockConfig *types.UserClockConfig
	if p.appConfig != nil && p.appConfig.Clock != nil {
		userClockConfig = p.appConfig.Clock
	}

	// clock.New会处理默认值、用户配置与环境变量覆盖
	return clock.New(userClockConfig).GetOptions()
}
