package clock

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuery 可编排的NTP查询结果
type fakeQuery struct {
	mu      sync.Mutex
	offset  time.Duration
	err     error
	calls   atomic.Int64
	servers []string
}

func (f *fakeQuery) set(offset time.Duration, err error) {
	f.mu.Lock()
	f.offset, f.err = offset, err
	f.mu.Unlock()
}

func (f *fakeQuery) query(server string, _ time.Duration) (time.Duration, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.servers = append(f.servers, server)
	return f.offset, f.err
}

func TestNewNTPClock_Validation(t *testing.T) {
	_, err := NewNTPClock("", time.Minute)
	assert.Error(t, err)

	_, err = NewNTPClock("time.google.com", 0)
	assert.Error(t, err)
}

func TestNTPClock_Now(t *testing.T) {
	fq := &fakeQuery{offset: 250 * time.Millisecond}
	base := NewMockClock(time.Unix(1_700_000_000, 0))

	c, err := NewNTPClock("time.google.com", time.Minute, WithQuery(fq.query), WithBaseClock(base))
	require.NoError(t, err)

	assert.Equal(t, int64(1), fq.calls.Load(), "构造时同步一次")
	assert.Equal(t, []string{"time.google.com"}, fq.servers)
	assert.True(t, time.Unix(1_700_000_000, 250_000_000).Equal(c.Now()))
	assert.Equal(t, int64(1_700_000_000_250_000_000), c.UnixNano())
	assert.Equal(t, "time.google.com", c.Server())
}

func TestNTPClock_InitialSyncFailure(t *testing.T) {
	fq := &fakeQuery{err: errors.New("unreachable")}
	base := NewMockClock(time.Unix(1_700_000_000, 0))

	c, err := NewNTPClock("time.invalid", time.Minute, WithQuery(fq.query), WithBaseClock(base))
	require.NoError(t, err, "初始化失败不致命")

	assert.True(t, base.Now().Equal(c.Now()), "偏移保持为零")

	healthy, _, lastSync, lastErr := c.Health()
	assert.False(t, healthy)
	assert.True(t, lastSync.IsZero())
	assert.Error(t, lastErr)
}

func TestNTPClock_Backoff(t *testing.T) {
	fq := &fakeQuery{err: errors.New("timeout")}
	c, err := NewNTPClock("time.google.com", time.Hour,
		WithQuery(fq.query),
		WithBackoff(time.Second, 5*time.Second),
	)
	require.NoError(t, err)

	// 构造时已失败一次
	assert.Equal(t, time.Second, c.nextDelay())

	require.Error(t, c.Sync())
	assert.Equal(t, 2*time.Second, c.nextDelay())

	require.Error(t, c.Sync())
	assert.Equal(t, 4*time.Second, c.nextDelay())

	require.Error(t, c.Sync())
	assert.Equal(t, 5*time.Second, c.nextDelay(), "退避不超过上限")

	fq.set(10*time.Millisecond, nil)
	require.NoError(t, c.Sync())
	assert.Equal(t, time.Hour, c.nextDelay(), "成功后清零退避")
}

func TestNTPClock_Health(t *testing.T) {
	fq := &fakeQuery{offset: 100 * time.Millisecond}

	t.Run("阈值内健康", func(t *testing.T) {
		c, err := NewNTPClock("time.google.com", time.Minute, WithQuery(fq.query), WithOffsetThreshold(time.Second))
		require.NoError(t, err)

		healthy, offset, lastSync, lastErr := c.Health()
		assert.True(t, healthy)
		assert.Equal(t, 100*time.Millisecond, offset)
		assert.False(t, lastSync.IsZero())
		assert.NoError(t, lastErr)
	})

	t.Run("超出阈值不健康", func(t *testing.T) {
		c, err := NewNTPClock("time.google.com", time.Minute, WithQuery(fq.query), WithOffsetThreshold(50*time.Millisecond))
		require.NoError(t, err)

		healthy, _, _, _ := c.Health()
		assert.False(t, healthy)
	})

	t.Run("负偏移超出阈值不健康", func(t *testing.T) {
		neg := &fakeQuery{offset: -2 * time.Second}
		c, err := NewNTPClock("time.google.com", time.Minute, WithQuery(neg.query), WithOffsetThreshold(time.Second))
		require.NoError(t, err)

		healthy, offset, _, _ := c.Health()
		assert.False(t, healthy)
		assert.Equal(t, -2*time.Second, offset)
	})

	t.Run("未配置阈值时不检查偏移", func(t *testing.T) {
		big := &fakeQuery{offset: time.Hour}
		c, err := NewNTPClock("time.google.com", time.Minute, WithQuery(big.query))
		require.NoError(t, err)

		healthy, _, _, _ := c.Health()
		assert.True(t, healthy)
	})
}

func TestNTPClock_StartStop(t *testing.T) {
	fq := &fakeQuery{offset: time.Millisecond}
	c, err := NewNTPClock("time.google.com", 5*time.Millisecond, WithQuery(fq.query))
	require.NoError(t, err)

	c.Start()
	c.Start() // 重复调用无副作用

	assert.Eventually(t, func() bool {
		return fq.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "后台循环应周期性同步")

	fq.set(7*time.Millisecond, nil)
	assert.Eventually(t, func() bool {
		_, offset, _, _ := c.Health()
		return offset == 7*time.Millisecond
	}, 2*time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()

	calls := fq.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, fq.calls.Load(), "停止后不再同步")
}

func TestNTPClock_ConcurrentNow(t *testing.T) {
	fq := &fakeQuery{offset: time.Millisecond}
	c, err := NewNTPClock("time.google.com", time.Millisecond, WithQuery(fq.query))
	require.NoError(t, err)
	c.Start()
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Now()
				_, _, _, _ = c.Health()
			}
		}()
	}
	wg.Wait()
}
