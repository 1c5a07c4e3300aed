// Package config provides configuration provider interfaces.
package config

import (
	clockconfig "github.com/weisyn/timetools/internal/config/clock"
	logconfig "github.com/weisyn/timetools/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppName 获取应用名称
	GetAppName() string

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetClock 获取时钟配置
	GetClock() *clockconfig.ClockOptions
}
