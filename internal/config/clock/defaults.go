// Package clock provides default configuration values for clock service.
package clock

import (
	"time"

	"github.com/weisyn/timetools/pkg/types"
)

// 时钟服务配置默认值
const (
	// defaultType 默认时钟类型设为"system"
	defaultType = TypeSystem

	// defaultNTPServer 默认NTP服务器设为"time.google.com"
	defaultNTPServer = "time.google.com"

	// defaultUnit 默认输出单位为毫秒，与 Now() 保持一致
	defaultUnit = types.Millis
)

var (
	// defaultSyncInterval 默认同步间隔设为5分钟
	defaultSyncInterval = 5 * time.Minute

	// defaultOffsetThreshold 默认偏移阈值设为500毫秒
	defaultOffsetThreshold = 500 * time.Millisecond

	// defaultQueryTimeout 单次NTP查询超时
	defaultQueryTimeout = 5 * time.Second

	// defaultBackoffInitial 默认初始退避时间设为5秒
	defaultBackoffInitial = 5 * time.Second

	// defaultBackoffMax 默认最大退避时间设为5分钟
	defaultBackoffMax = 5 * time.Minute
)
