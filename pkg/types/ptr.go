package types

// StringPtr 返回字符串指针，便于构造用户配置
func StringPtr(s string) *string { return &s }

// Int64Ptr 返回 int64 指针
func Int64Ptr(n int64) *int64 { return &n }
