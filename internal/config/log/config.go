package log

import (
	"github.com/weisyn/timetools/pkg/types"
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug | info | warn | error | fatal
	ToConsole bool   `json:"to_console"` // 控制台输出（stderr）
	FilePath  string `json:"file_path"`  // 为空时不写文件

	// 文件轮转，交给 lumberjack
	MaxSize    int  `json:"max_size"` // MB
	MaxBackups int  `json:"max_backups"`
	MaxAge     int  `json:"max_age"` // 天
	Compress   bool `json:"compress"`

	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"` // Error 及以上附带堆栈

	LevelMap map[string]zapcore.Level `json:"-"`
}

// Config 日志配置
type Config struct {
	options *LogOptions
}

// New 以默认值为基础叠加用户配置，userConfig 可为 nil
func New(userConfig *types.UserLogConfig) *Config {
	opts := createDefaultLogOptions()
	applyUserLogConfig(opts, userConfig)
	return &Config{options: opts}
}

// NewFromOptions 直接使用完整选项
func NewFromOptions(opts *LogOptions) *Config {
	if opts == nil {
		return New(nil)
	}
	if opts.LevelMap == nil {
		opts.LevelMap = defaultLevelMap
	}
	return &Config{options: opts}
}

// NewFromProvider 从配置提供者创建日志配置
func NewFromProvider(provider interface{ GetLog() *LogOptions }) *Config {
	if provider == nil {
		return New(nil)
	}
	return NewFromOptions(provider.GetLog())
}

func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		FilePath:         defaultFilePath,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
		LevelMap:         defaultLevelMap,
	}
}

func applyUserLogConfig(opts *LogOptions, user *types.UserLogConfig) {
	if user == nil {
		return
	}
	if user.Level != nil {
		opts.Level = *user.Level
	}
	if user.FilePath != nil {
		opts.FilePath = *user.FilePath
		// 写文件时不再占用终端
		opts.ToConsole = false
	}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetZapLevel 未知级别按 info 处理
func (c *Config) GetZapLevel() zapcore.Level {
	if level, ok := c.options.LevelMap[c.options.Level]; ok {
		return level
	}
	return zapcore.InfoLevel
}

// encoderConfig 文件与控制台共用的字段布局
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// CreateFileEncoder 文件使用 JSON 编码，时间为 ISO8601
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// CreateConsoleEncoder 控制台只显示时分秒，级别带颜色
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
