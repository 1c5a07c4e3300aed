package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weisyn/timetools/configs"
	"github.com/weisyn/timetools/internal/app"
	"github.com/weisyn/timetools/pkg/types"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件路径
	Env        string // 内置环境配置
	LogLevel   string // 日志级别覆盖
}

// newRootCmd 构建命令树，每次调用返回独立实例
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "timetools",
		Short: "读取当前时间距 Unix 纪元的偏移量",
		Long: `timetools - 纪元时钟读取工具

以毫秒、纳秒、微秒或秒为单位输出当前时间距
1970-01-01T00:00:00Z 的偏移量。

时钟来源由配置文件或 CLOCK_* 环境变量决定:
  system         平台实时时钟（默认）
  ntp            定期与NTP服务器校准
  deterministic  每次读取递增1毫秒，用于可复现场景
  mock           固定时刻，用于测试`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "JSON配置文件路径")
	rootCmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "", "使用内置环境配置: "+strings.Join(configs.Environments(), "|"))
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")

	rootCmd.AddCommand(newNowCmd(flags))
	rootCmd.AddCommand(newHealthCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute 执行根命令
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// runWithApp 装配并启动应用，执行 fn 后停止
func runWithApp(ctx context.Context, flags *GlobalFlags, fn func(*app.App) error) (err error) {
	opts := []app.Option{
		app.WithConfigFile(flags.ConfigFile),
		app.WithEnvironment(flags.Env),
	}
	if flags.LogLevel != "" {
		level, err := types.ParseLogLevel(flags.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithLogLevel(level))
	}

	a, err := app.New(opts...)
	if err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(context.WithoutCancel(ctx)); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	return fn(a)
}
