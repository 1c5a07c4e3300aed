package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/weisyn/timetools/internal/app"
)

var errNotNTPClock = errors.New("健康检查仅适用于 ntp 时钟（设置 CLOCK_TYPE=ntp）")

func newHealthCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "检查NTP时钟同步状态",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd.Context(), global, func(a *app.App) error {
				ntpClock := a.NTPClock()
				if ntpClock == nil {
					return errNotNTPClock
				}

				healthy, offset, lastSync, lastErr := ntpClock.Health()

				synced := "从未同步"
				if !lastSync.IsZero() {
					synced = lastSync.UTC().Format(time.RFC3339)
				}
				errText := "-"
				if lastErr != nil {
					errText = lastErr.Error()
				}

				if err := renderTable(cmd, [][]string{
					{"项目", "值"},
					{"服务器", ntpClock.Server()},
					{"健康", fmt.Sprintf("%t", healthy)},
					{"偏移", offset.String()},
					{"最近同步", synced},
					{"最近错误", errText},
				}); err != nil {
					return err
				}

				if !healthy {
					return fmt.Errorf("NTP时钟不健康 server=%s", ntpClock.Server())
				}
				return nil
			})
		},
	}
}
