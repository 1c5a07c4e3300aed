// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用名称
	AppName *string `json:"app_name,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 时钟配置
	Clock *UserClockConfig `json:"clock,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserClockConfig 用户时钟配置
// 指针字段用于区分"未设置"和"显式设置为零值"
type UserClockConfig struct {
	Type                  *string   `json:"type,omitempty"`       // system | ntp | deterministic | mock
	NTPServer             *string   `json:"ntp_server,omitempty"` // 如 time.google.com
	SyncIntervalMs        *int64    `json:"sync_interval_ms,omitempty"`
	OffsetThresholdMs     *int64    `json:"offset_threshold_ms,omitempty"`
	QueryTimeoutMs        *int64    `json:"query_timeout_ms,omitempty"`
	BackoffInitialMs      *int64    `json:"backoff_initial_ms,omitempty"` // NTP同步失败后的首次重试间隔
	BackoffMaxMs          *int64    `json:"backoff_max_ms,omitempty"`     // 退避上限
	DeterministicBaseUnix *int64    `json:"deterministic_base_unix,omitempty"`
	DefaultUnit           *TimeUnit `json:"default_unit,omitempty"` // millis | nanos | micros | sec
}
