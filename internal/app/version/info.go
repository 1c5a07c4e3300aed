// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// 构建时通过 -ldflags "-X" 注入
var (
	Version   = "v0.1.0"
	BuildTime = "unknown" // RFC3339
	BuildEnv  = "development"
	Commit    = "" // 为空时从 VCS 构建信息读取
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		Commit:    commit(),
		BuildTime: BuildTime,
		BuildEnv:  BuildEnv,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetFullVersion 多行版本描述，用于 version 命令
func GetFullVersion() string {
	info := GetBuildInfo()

	s := fmt.Sprintf("timetools %s", info.Version)
	if info.Commit != "" {
		s += fmt.Sprintf(" (%s)", info.Commit)
	}
	if info.BuildTime != "unknown" {
		if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			s += fmt.Sprintf("\n构建时间: %s", t.UTC().Format("2006-01-02 15:04:05 MST"))
		} else {
			s += fmt.Sprintf("\n构建时间: %s", info.BuildTime)
		}
	}
	s += fmt.Sprintf("\n构建环境: %s", info.BuildEnv)
	s += fmt.Sprintf("\nGo版本: %s", info.GoVersion)
	s += fmt.Sprintf("\n平台: %s", info.Platform)
	return s
}

func commit() string {
	if Commit != "" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
			return setting.Value[:12]
		}
	}
	return ""
}
