package clock

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// fetchFn 返回 (ok, offset, lastSync, lastError)
type fetchFn func() (bool, time.Duration, time.Time, error)

type clockCollector struct {
	fetch fetchFn

	offsetSeconds   *prometheus.Desc
	lastSyncSeconds *prometheus.Desc
	healthy         *prometheus.Desc
}

func (c *clockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.offsetSeconds
	ch <- c.lastSyncSeconds
	ch <- c.healthy
}

func (c *clockCollector) Collect(ch chan<- prometheus.Metric) {
	ok, offset, lastSync, _ := c.fetch()
	ch <- prometheus.MustNewConstMetric(c.offsetSeconds, prometheus.GaugeValue, offset.Seconds())

	var lastSyncUnix float64
	if !lastSync.IsZero() {
		lastSyncUnix = float64(lastSync.Unix())
	}
	ch <- prometheus.MustNewConstMetric(c.lastSyncSeconds, prometheus.GaugeValue, lastSyncUnix)

	var healthy float64
	if ok {
		healthy = 1
	}
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

func newClockCollector(fetch fetchFn) *clockCollector {
	return &clockCollector{
		fetch: fetch,
		offsetSeconds: prometheus.NewDesc(
			"timetools_clock_offset_seconds",
			"Positive means local time is behind NTP time",
			nil, nil,
		),
		lastSyncSeconds: prometheus.NewDesc(
			"timetools_clock_last_sync_unix",
			"Last successful sync Unix timestamp",
			nil, nil,
		),
		healthy: prometheus.NewDesc(
			"timetools_clock_healthy",
			"1 if clock is healthy, otherwise 0",
			nil, nil,
		),
	}
}

// RegisterClockMetrics 在 reg 中注册时钟健康指标采集器，reg 为 nil 时使用默认注册表
func RegisterClockMetrics(reg prometheus.Registerer, fetch fetchFn) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return reg.Register(newClockCollector(fetch))
}

// newReadsCounter 时钟读取计数，按单位与结果（ok|before_epoch|overflow|invalid_unit）区分
func newReadsCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetools_clock_reads_total",
		Help: "Number of elapsed-offset reads by unit and result",
	}, []string{"unit", "result"})
}

// registerCounter 注册计数器；已注册时复用已有实例
func registerCounter(reg prometheus.Registerer, counter *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if reg == nil {
		return counter, nil
	}
	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}
