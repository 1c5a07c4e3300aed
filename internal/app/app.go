// Package app 负责装配并运行 timetools 应用
package app

import (
	"context"
	"fmt"

	"github.com/weisyn/timetools/internal/core/infrastructure/clock"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// App 已装配的应用实例
type App struct {
	fxApp  *fx.App
	reader *clock.Reader
	ntp    *clock.NTPClock
	logger logInterface.Logger
}

// New 装配应用（配置 -> 日志 -> 时钟），装配失败时返回错误
func New(opts ...Option) (*App, error) {
	a := &App{}
	o := newOptions(opts...)
	o.extra = append(o.extra, fx.Populate(&a.reader, &a.ntp, &a.logger))

	fxApp, err := NewBootstrap(o).CreateFxApp()
	if err != nil {
		return nil, err
	}
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("装配应用失败: %w", err)
	}
	a.fxApp = fxApp
	return a, nil
}

// Start 启动应用（注入全局时间源、启动NTP同步）
func (a *App) Start(ctx context.Context) error {
	if err := a.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// Stop 停止应用
func (a *App) Stop(ctx context.Context) error {
	if err := a.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// Reader 返回纪元偏移读取服务
func (a *App) Reader() *clock.Reader { return a.reader }

// NTPClock 返回NTP时钟，非 ntp 类型时为 nil
func (a *App) NTPClock() *clock.NTPClock { return a.ntp }

// Logger 返回应用日志记录器
func (a *App) Logger() logInterface.Logger { return a.logger }
