package types

import (
	"errors"
	"fmt"
	"strings"
)

// TimeUnit 时间单位（封闭枚举）
// 零值为 Millis，与 Now() 的默认精度一致
type TimeUnit uint8

const (
	Millis TimeUnit = iota // 毫秒
	Nanos                  // 纳秒
	Micros                 // 微秒
	Sec                    // 秒
)

// ErrInvalidTimeUnit 非法的时间单位
var ErrInvalidTimeUnit = errors.New("invalid time unit")

// AllTimeUnits 按枚举顺序列出全部时间单位
var AllTimeUnits = []TimeUnit{Millis, Nanos, Micros, Sec}

var timeUnitNames = map[TimeUnit]string{
	Millis: "millis",
	Nanos:  "nanos",
	Micros: "micros",
	Sec:    "sec",
}

var timeUnitAliases = map[string]TimeUnit{
	"ms":           Millis,
	"milli":        Millis,
	"millis":       Millis,
	"milliseconds": Millis,
	"ns":           Nanos,
	"nano":         Nanos,
	"nanos":        Nanos,
	"nanoseconds":  Nanos,
	"us":           Micros,
	"µs":           Micros,
	"micro":        Micros,
	"micros":       Micros,
	"microseconds": Micros,
	"s":            Sec,
	"sec":          Sec,
	"secs":         Sec,
	"seconds":      Sec,
}

// Valid 是否为已定义的时间单位
func (u TimeUnit) Valid() bool {
	_, ok := timeUnitNames[u]
	return ok
}

func (u TimeUnit) String() string {
	if name, ok := timeUnitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("TimeUnit(%d)", uint8(u))
}

// MarshalText 实现 encoding.TextMarshaler
func (u TimeUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTimeUnit, uint8(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (u *TimeUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseTimeUnit 解析时间单位名称（大小写不敏感，支持 ms/us/ns/s 等缩写）
func ParseTimeUnit(s string) (TimeUnit, error) {
	if u, ok := timeUnitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeUnit, s)
}

// Offsets 同一次时钟采样换算出的全部单位偏移量
type Offsets struct {
	Millis uint64 `json:"millis"`
	Nanos  uint64 `json:"nanos"`
	Micros uint64 `json:"micros"`
	Sec    uint64 `json:"sec"`
}

// Get 按单位取值，未知单位返回 false
func (o Offsets) Get(unit TimeUnit) (uint64, bool) {
	switch unit {
	case Millis:
		return o.Millis, true
	case Nanos:
		return o.Nanos, true
	case Micros:
		return o.Micros, true
	case Sec:
		return o.Sec, true
	default:
		return 0, false
	}
}
