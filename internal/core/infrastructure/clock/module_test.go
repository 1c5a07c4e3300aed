package clock

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weisyn/timetools/internal/config"
	clockconfig "github.com/weisyn/timetools/internal/config/clock"
	"github.com/weisyn/timetools/internal/core/infrastructure/log"
	configInterface "github.com/weisyn/timetools/pkg/interfaces/config"
	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/timetools/pkg/types"
	"github.com/weisyn/timetools/pkg/utils/timeutil"
)

func TestNewClock(t *testing.T) {
	tests := []struct {
		typ  string
		want interface{}
	}{
		{typ: clockconfig.TypeSystem, want: &SystemClock{}},
		{typ: "", want: &SystemClock{}},
		{typ: clockconfig.TypeDeterministic, want: &DeterministicClock{}},
		{typ: clockconfig.TypeMock, want: &MockClock{}},
		{typ: "roughtime", want: &SystemClock{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			c, err := NewClock(&clockconfig.ClockOptions{Type: tt.typ, DeterministicBaseUnix: 1_700_000_000}, nil)
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
		})
	}

	t.Run("ntp 配置非法", func(t *testing.T) {
		_, err := NewClock(&clockconfig.ClockOptions{Type: clockconfig.TypeNTP}, nil)
		assert.Error(t, err)
	})
}

func TestModule_Deterministic(t *testing.T) {
	t.Setenv("CLOCK_TYPE", "")

	appConfig := &types.AppConfig{
		Clock: &types.UserClockConfig{
			Type:                  types.StringPtr(clockconfig.TypeMock),
			DeterministicBaseUnix: types.Int64Ptr(1_700_000_000),
			DefaultUnit:           func() *types.TimeUnit { u := types.Sec; return &u }(),
		},
	}

	var (
		reader     infraClock.Reader
		readerImpl *Reader
		ntpClock   *NTPClock
	)
	app := fxtest.New(t,
		fx.Provide(func() configInterface.Provider { return config.NewProvider(appConfig) }),
		fx.Provide(func() prometheus.Registerer { return prometheus.NewRegistry() }),
		Module(),
		fx.Populate(&reader, &readerImpl, &ntpClock),
	)
	app.RequireStart()

	assert.Nil(t, ntpClock)
	assert.Equal(t, types.Sec, readerImpl.DefaultUnit())

	v, err := reader.NowAs(types.Sec)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_000), v)

	t.Run("启动后注入全局时间源", func(t *testing.T) {
		v, err := timeutil.NowAs(types.Sec)
		require.NoError(t, err)
		assert.Equal(t, uint64(1_700_000_000), v)
	})

	app.RequireStop()

	t.Run("停止后恢复平台时钟", func(t *testing.T) {
		v, err := timeutil.NowAs(types.Sec)
		require.NoError(t, err)
		assert.InDelta(t, float64(time.Now().Unix()), float64(v), 2)
	})
}

func TestModule_LogsInvalidEnv(t *testing.T) {
	t.Setenv("CLOCK_TYPE", clockconfig.TypeMock)
	t.Setenv("CLOCK_DEFAULT_UNIT", "fortnight")

	core, logs := observer.New(zapcore.WarnLevel)
	var reader *Reader
	app := fxtest.New(t,
		fx.Provide(func() configInterface.Provider { return config.NewProvider(nil) }),
		fx.Provide(func() logInterface.Logger { return log.NewFromZap(zap.New(core)) }),
		Module(),
		fx.Populate(&reader),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, types.Millis, reader.DefaultUnit(), "非法值不生效")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Contains(t, entry.Message, "CLOCK_DEFAULT_UNIT")
	assert.Equal(t, "clock", entry.ContextMap()["module"])
}
