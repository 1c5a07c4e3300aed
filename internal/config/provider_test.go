package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clockconfig "github.com/weisyn/timetools/internal/config/clock"
	"github.com/weisyn/timetools/pkg/types"
)

func TestGetAppName(t *testing.T) {
	t.Run("未配置时使用默认名称", func(t *testing.T) {
		assert.Equal(t, defaultAppName, NewProvider(nil).GetAppName())
		assert.Equal(t, defaultAppName, NewProvider(&types.AppConfig{AppName: types.StringPtr("")}).GetAppName())
	})

	t.Run("显式配置名称", func(t *testing.T) {
		provider := NewProvider(&types.AppConfig{AppName: types.StringPtr("chrono")})
		assert.Equal(t, "chrono", provider.GetAppName())
	})
}

func TestGetLog(t *testing.T) {
	t.Run("默认日志配置", func(t *testing.T) {
		opts := NewProvider(nil).GetLog()
		require.NotNil(t, opts)
		assert.Equal(t, "info", opts.Level)
		assert.True(t, opts.ToConsole)
	})

	t.Run("指定文件路径时关闭控制台", func(t *testing.T) {
		opts := NewProvider(&types.AppConfig{
			Log: &types.UserLogConfig{
				Level:    types.StringPtr("debug"),
				FilePath: types.StringPtr("logs/timetools.log"),
			},
		}).GetLog()
		assert.Equal(t, "debug", opts.Level)
		assert.Equal(t, "logs/timetools.log", opts.FilePath)
		assert.False(t, opts.ToConsole)
	})
}

func TestGetClock(t *testing.T) {
	t.Setenv("CLOCK_TYPE", "")

	provider := NewProvider(&types.AppConfig{
		Clock: &types.UserClockConfig{
			Type:           types.StringPtr(clockconfig.TypeNTP),
			SyncIntervalMs: types.Int64Ptr(30_000),
		},
	})
	opts := provider.GetClock()
	assert.Equal(t, clockconfig.TypeNTP, opts.Type)
	assert.Equal(t, 30*time.Second, opts.SyncInterval)
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("空路径返回空配置", func(t *testing.T) {
		cfg, err := LoadAppConfig("")
		require.NoError(t, err)
		assert.Nil(t, cfg.Clock)
	})

	t.Run("解析JSON配置", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "timetools.json")
		content := `{
			"app_name": "chrono",
			"log": {"level": "warn"},
			"clock": {"type": "deterministic", "deterministic_base_unix": 1700000000, "default_unit": "us"}
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Clock)
		assert.Equal(t, "chrono", *cfg.AppName)
		assert.Equal(t, "warn", *cfg.Log.Level)
		assert.Equal(t, "deterministic", *cfg.Clock.Type)
		assert.Equal(t, int64(1700000000), *cfg.Clock.DeterministicBaseUnix)
		assert.Equal(t, types.Micros, *cfg.Clock.DefaultUnit)
	})

	t.Run("非法单位", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"clock":{"default_unit":"fortnight"}}`), 0o600))

		_, err := LoadAppConfig(path)
		assert.ErrorIs(t, err, types.ErrInvalidTimeUnit)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}
