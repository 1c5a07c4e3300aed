// Package clock provides clock synchronization interfaces.
package clock

import (
	"time"

	"github.com/weisyn/timetools/pkg/types"
)

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 设计目标：
// - 可测试：支持可替换与Mock实现
// - 可扩展：可切换为NTP/确定性等时间源
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64

	// UnixNano 获取当前Unix时间戳（纳秒）
	UnixNano() int64
}

// Reader 以指定单位读取距 Unix 纪元的经过时间
//
// 时钟早于纪元时所有方法均返回错误（可恢复策略），不会 panic，也不会返回回绕值。
// 实现必须支持并发调用。
type Reader interface {
	// Now 返回距纪元的毫秒数
	Now() (uint64, error)

	// NowAs 返回距纪元的偏移量，单位由调用方指定
	NowAs(unit types.TimeUnit) (uint64, error)

	// NowAll 单次采样换算出全部单位
	NowAll() (types.Offsets, error)
}
