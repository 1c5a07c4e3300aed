// Package configs 内置各环境的配置文件
package configs

import (
	_ "embed"
	"fmt"
	"sort"
)

// 环境名称
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// EmbeddedConfigs 嵌入的配置文件内容
type EmbeddedConfigs struct {
	Development []byte
	Testing     []byte
	Production  []byte
}

//go:embed development/config.json
var developmentConfig []byte

//go:embed testing/config.json
var testingConfig []byte

//go:embed production/config.json
var productionConfig []byte

// GetEmbeddedConfigs 获取所有嵌入的配置
func GetEmbeddedConfigs() *EmbeddedConfigs {
	return &EmbeddedConfigs{
		Development: developmentConfig,
		Testing:     testingConfig,
		Production:  productionConfig,
	}
}

// GetConfig 按环境名称获取配置内容
func GetConfig(env string) ([]byte, error) {
	all := GetEmbeddedConfigs()
	byEnv := map[string][]byte{
		EnvDevelopment: all.Development,
		EnvTesting:     all.Testing,
		EnvProduction:  all.Production,
	}
	data, ok := byEnv[env]
	if !ok {
		return nil, fmt.Errorf("未知的环境 %q，可选: %v", env, Environments())
	}
	return data, nil
}

// Environments 返回内置的环境名称
func Environments() []string {
	envs := []string{EnvDevelopment, EnvTesting, EnvProduction}
	sort.Strings(envs)
	return envs
}
