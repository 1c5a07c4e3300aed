package clock

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/weisyn/timetools/pkg/types"
)

// 时钟类型
const (
	TypeSystem        = "system"
	TypeNTP           = "ntp"
	TypeDeterministic = "deterministic"
	TypeMock          = "mock"
)

// ClockOptions 时钟配置
type ClockOptions struct {
	Type            string        `json:"type"` // system | ntp | deterministic | mock
	NTPServer       string        `json:"ntp_server"`
	SyncInterval    time.Duration `json:"sync_interval"`
	OffsetThreshold time.Duration `json:"offset_threshold"` // 判定不健康的偏移阈值
	QueryTimeout    time.Duration `json:"query_timeout"`

	// 回退与重试
	BackoffInitial time.Duration `json:"backoff_initial"`
	BackoffMax     time.Duration `json:"backoff_max"`

	// Deterministic / Mock 配置
	DeterministicBaseUnix int64 `json:"deterministic_base_unix"`

	// DefaultUnit Reader 未显式指定单位时使用
	DefaultUnit types.TimeUnit `json:"default_unit"`

	// EnvErrors 解析失败而未生效的环境变量
	EnvErrors []error `json:"-"`
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建配置：默认值 < 用户配置 < 环境变量
// 环境变量：
//
//	CLOCK_TYPE (system|ntp|deterministic|mock)
//	CLOCK_NTP_SERVER (如 time.google.com)
//	CLOCK_SYNC_INTERVAL_MS
//	CLOCK_OFFSET_THRESHOLD_MS
//	CLOCK_QUERY_TIMEOUT_MS
//	CLOCK_BACKOFF_INITIAL_MS
//	CLOCK_BACKOFF_MAX_MS
//	CLOCK_DETERMINISTIC_BASE_UNIX
//	CLOCK_DEFAULT_UNIT (ms|us|ns|s)
func New(userConfig *types.UserClockConfig) *Config {
	opts := createDefaultClockOptions()
	applyUserClockConfig(opts, userConfig)
	applyEnvOverrides(opts)
	return &Config{options: opts}
}

func createDefaultClockOptions() *ClockOptions {
	return &ClockOptions{
		Type:                  defaultType,
		NTPServer:             defaultNTPServer,
		SyncInterval:          defaultSyncInterval,
		OffsetThreshold:       defaultOffsetThreshold,
		QueryTimeout:          defaultQueryTimeout,
		BackoffInitial:        defaultBackoffInitial,
		BackoffMax:            defaultBackoffMax,
		DeterministicBaseUnix: 0,
		DefaultUnit:           defaultUnit,
	}
}

func applyUserClockConfig(opts *ClockOptions, user *types.UserClockConfig) {
	if user == nil {
		return
	}
	if user.Type != nil {
		opts.Type = *user.Type
	}
	if user.NTPServer != nil {
		opts.NTPServer = *user.NTPServer
	}
	if user.SyncIntervalMs != nil {
		opts.SyncInterval = time.Duration(*user.SyncIntervalMs) * time.Millisecond
	}
	if user.OffsetThresholdMs != nil {
		opts.OffsetThreshold = time.Duration(*user.OffsetThresholdMs) * time.Millisecond
	}
	if user.QueryTimeoutMs != nil {
		opts.QueryTimeout = time.Duration(*user.QueryTimeoutMs) * time.Millisecond
	}
	if user.BackoffInitialMs != nil {
		opts.BackoffInitial = time.Duration(*user.BackoffInitialMs) * time.Millisecond
	}
	if user.BackoffMaxMs != nil {
		opts.BackoffMax = time.Duration(*user.BackoffMaxMs) * time.Millisecond
	}
	if user.DeterministicBaseUnix != nil {
		opts.DeterministicBaseUnix = *user.DeterministicBaseUnix
	}
	if user.DefaultUnit != nil {
		opts.DefaultUnit = *user.DefaultUnit
	}
}

// applyEnvOverrides 应用 CLOCK_* 环境变量；非法值不生效，记入 EnvErrors
func applyEnvOverrides(opts *ClockOptions) {
	if v := os.Getenv("CLOCK_TYPE"); v != "" {
		opts.Type = v
	}
	if v := os.Getenv("CLOCK_NTP_SERVER"); v != "" {
		opts.NTPServer = v
	}

	millis := []struct {
		key string
		dst *time.Duration
	}{
		{"CLOCK_SYNC_INTERVAL_MS", &opts.SyncInterval},
		{"CLOCK_OFFSET_THRESHOLD_MS", &opts.OffsetThreshold},
		{"CLOCK_QUERY_TIMEOUT_MS", &opts.QueryTimeout},
		{"CLOCK_BACKOFF_INITIAL_MS", &opts.BackoffInitial},
		{"CLOCK_BACKOFF_MAX_MS", &opts.BackoffMax},
	}
	for _, m := range millis {
		v := os.Getenv(m.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			opts.EnvErrors = append(opts.EnvErrors, envError(m.key, v, err))
			continue
		}
		*m.dst = time.Duration(n) * time.Millisecond
	}

	if v := os.Getenv("CLOCK_DETERMINISTIC_BASE_UNIX"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err != nil {
			opts.EnvErrors = append(opts.EnvErrors, envError("CLOCK_DETERMINISTIC_BASE_UNIX", v, err))
		} else {
			opts.DeterministicBaseUnix = n
		}
	}
	if v := os.Getenv("CLOCK_DEFAULT_UNIT"); v != "" {
		if u, err := types.ParseTimeUnit(v); err != nil {
			opts.EnvErrors = append(opts.EnvErrors, envError("CLOCK_DEFAULT_UNIT", v, err))
		} else {
			opts.DefaultUnit = u
		}
	}
}

func envError(key, value string, err error) error {
	return fmt.Errorf("忽略环境变量 %s=%q: %w", key, value, err)
}

func (c *Config) GetOptions() *ClockOptions { return c.options }
