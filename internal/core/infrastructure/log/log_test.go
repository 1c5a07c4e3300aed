package log

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logconfig "github.com/weisyn/timetools/internal/config/log"
)

// captureStderr 捕获标准错误输出
func captureStderr(t *testing.T, f func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// TestConsoleLog 控制台日志写到 stderr
func TestConsoleLog(t *testing.T) {
	output := captureStderr(t, func() {
		logger, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{
			Level:     InfoLevel,
			ToConsole: true,
		}))
		require.NoError(t, err)

		logger.Info("测试控制台日志")
		logger.Debug("不应出现的调试日志")
		_ = logger.Sync()
	})

	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "测试控制台日志")
	assert.NotContains(t, output, "不应出现的调试日志")
}

// TestFileLog 文件日志为 JSON 格式
func TestFileLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "timetools.log")

	logger, err := New(logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:      DebugLevel,
		FilePath:   logPath,
		ToConsole:  false,
		MaxSize:    1,
		MaxBackups: 1,
	}))
	require.NoError(t, err)

	logger.Debug("调试日志")
	logger.With("unit", "millis", "offset", 42).Warn("警告日志")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "警告日志", entry["message"])
	assert.Equal(t, "millis", entry["unit"])
	assert.Equal(t, float64(42), entry["offset"])
}

// TestWithFields 结构化字段与奇数参数处理
func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewFromZap(zap.New(core))

	logger.With("key1", "value1", "key2", 42, "dangling").Info("结构化日志测试")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "value1", fields["key1"])
	assert.EqualValues(t, 42, fields["key2"])
	assert.NotContains(t, fields, "dangling")
}

// TestNewModuleLogger 带 module 字段的 logger
func TestNewModuleLogger(t *testing.T) {
	assert.Nil(t, NewModuleLogger(nil, "clock"))

	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewModuleLogger(NewFromZap(zap.New(core)), "clock")
	logger.Infof("offset=%d", 7)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "clock", logs.All()[0].ContextMap()["module"])
	assert.Equal(t, "offset=7", logs.All()[0].Message)
}

// TestSetLogger 测试设置和切换全局日志记录器
func TestSetLogger(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	core, logs := observer.New(zapcore.DebugLevel)
	custom := NewFromZap(zap.New(core))

	SetLogger(custom)
	assert.Same(t, custom, GetLogger())

	SetLogger(nil)
	assert.Same(t, custom, GetLogger(), "nil 不应覆盖全局日志记录器")

	GetLogger().With("k", "v").Info("带字段")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
}

// TestResetDefault 测试重置默认日志记录器
func TestResetDefault(t *testing.T) {
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	custom := NewFromZap(zap.NewNop())
	SetLogger(custom)

	ResetDefault()
	assert.NotSame(t, custom, GetLogger())
}

func TestNewFromZap_Nil(t *testing.T) {
	logger := NewFromZap(nil)
	require.NotNil(t, logger.GetZapLogger())
	logger.Info("丢弃")
}
