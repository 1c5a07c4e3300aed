package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	infraClock "github.com/weisyn/timetools/pkg/interfaces/infrastructure/clock"
	logInterface "github.com/weisyn/timetools/pkg/interfaces/infrastructure/log"
)

// QueryFunc 查询 server 并返回本地时钟相对 NTP 时间的偏移
type QueryFunc func(server string, timeout time.Duration) (time.Duration, error)

// NTPClock 通过NTP周期性校正偏移的时钟实现
// Now 只读取缓存的偏移，不会阻塞在网络上；同步由 Start 启动的后台循环完成
type NTPClock struct {
	server             string
	syncInterval       time.Duration
	backoffInitial     time.Duration
	backoffMax         time.Duration
	unhealthyThreshold time.Duration
	queryTimeout       time.Duration
	query              QueryFunc
	base               infraClock.Clock
	logger             logInterface.Logger

	mu        sync.RWMutex
	offset    time.Duration
	lastSync  time.Time
	backoff   time.Duration
	lastError error

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NTPOption NTP时钟可选项
type NTPOption func(*NTPClock)

// WithBackoff 设置同步失败后的退避区间
func WithBackoff(initial, max time.Duration) NTPOption {
	return func(c *NTPClock) {
		c.backoffInitial = initial
		c.backoffMax = max
	}
}

// WithOffsetThreshold 偏移超过阈值时 Health 判定为不健康，0 表示不检查
func WithOffsetThreshold(d time.Duration) NTPOption {
	return func(c *NTPClock) { c.unhealthyThreshold = d }
}

// WithQueryTimeout 设置单次查询超时
func WithQueryTimeout(d time.Duration) NTPOption {
	return func(c *NTPClock) { c.queryTimeout = d }
}

// WithQuery 替换NTP查询实现（测试用）
func WithQuery(q QueryFunc) NTPOption {
	return func(c *NTPClock) { c.query = q }
}

// WithBaseClock 替换被校正的本地时钟
func WithBaseClock(base infraClock.Clock) NTPOption {
	return func(c *NTPClock) { c.base = base }
}

// WithNTPLogger 设置日志记录器
func WithNTPLogger(l logInterface.Logger) NTPOption {
	return func(c *NTPClock) { c.logger = l }
}

// NewNTPClock 创建NTP时钟并立即同步一次
// server 例如 "time.google.com"，syncInterval 建议 5~10 分钟
func NewNTPClock(server string, syncInterval time.Duration, opts ...NTPOption) (*NTPClock, error) {
	if server == "" {
		return nil, errors.New("ntp server is required")
	}
	if syncInterval <= 0 {
		return nil, fmt.Errorf("invalid ntp sync interval: %s", syncInterval)
	}

	c := &NTPClock{
		server:         server,
		syncInterval:   syncInterval,
		backoffInitial: 5 * time.Second,
		backoffMax:     5 * time.Minute,
		queryTimeout:   5 * time.Second,
		query:          queryNTP,
		base:           NewSystemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.Sync(); err != nil && c.logger != nil {
		// 初始化失败不致命，偏移保持为零，后台循环按退避重试
		c.logger.Warnf("NTP初始同步失败 server=%s: %v", server, err)
	}
	return c, nil
}

func queryNTP(server string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("NTP响应无效: %w", err)
	}
	return resp.ClockOffset, nil
}

func (c *NTPClock) Now() time.Time {
	c.mu.RLock()
	offset := c.offset
	c.mu.RUnlock()
	return c.base.Now().Add(offset)
}

func (c *NTPClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *NTPClock) Unix() int64                     { return c.Now().Unix() }
func (c *NTPClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Server 返回NTP服务器地址
func (c *NTPClock) Server() string { return c.server }

// Sync 立即查询一次NTP并更新偏移；失败时偏移保持不变并增大退避
func (c *NTPClock) Sync() error {
	offset, err := c.query(c.server, c.queryTimeout)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastError = err
		if c.backoff == 0 {
			c.backoff = c.backoffInitial
		} else {
			c.backoff *= 2
		}
		if c.backoff > c.backoffMax {
			c.backoff = c.backoffMax
		}
		return fmt.Errorf("同步NTP时间失败 server=%s: %w", c.server, err)
	}

	c.offset = offset
	c.lastSync = c.base.Now()
	c.lastError = nil
	c.backoff = 0
	return nil
}

// Health 返回当前健康状态与关键指标
// healthy: 最近一次同步无错误，且偏移量在阈值内
func (c *NTPClock) Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error) {
	c.mu.RLock()
	offset, lastSync, lastError = c.offset, c.lastSync, c.lastError
	threshold := c.unhealthyThreshold
	c.mu.RUnlock()

	// 偏移阈值未配置时不启用该检查
	if threshold > 0 && (offset < -threshold || offset > threshold) {
		return false, offset, lastSync, lastError
	}
	if lastError != nil || lastSync.IsZero() {
		return false, offset, lastSync, lastError
	}
	return true, offset, lastSync, nil
}

// nextDelay 计算下一次同步前的等待时间（含退避）
func (c *NTPClock) nextDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.backoff > 0 {
		return c.backoff
	}
	return c.syncInterval
}

// Start 启动后台同步循环，重复调用无副作用
func (c *NTPClock) Start() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Stop 停止后台同步循环并等待其退出
func (c *NTPClock) Stop() {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *NTPClock) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(c.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if err := c.Sync(); err != nil && c.logger != nil {
				c.logger.Warnf("%v，%s 后重试", err, c.nextDelay())
			}
			timer.Reset(c.nextDelay())
		}
	}
}

var _ infraClock.Clock = (*NTPClock)(nil)
