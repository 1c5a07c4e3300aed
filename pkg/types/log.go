package types

import (
	"errors"
	"fmt"
	"strings"
)

// LogLevel 日志级别类型
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// ErrInvalidLogLevel 非法的日志级别
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLogLevel 解析日志级别（不区分大小写）
func ParseLogLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}
