package config

import (
	"context"
	"fmt"
	"strings"
)

// Config 配置结构
type Config struct {
	Name      string   // 配置文件名称（不含扩展名），默认 "config"
	Paths     []string // 配置文件搜索路径，默认 ["./", "./config"]
	FileType  string   // 配置文件类型 (yaml, json, etc.)，默认 "yaml"
	EnvPrefix string   // 环境变量前缀，默认 "SNOWID"
}

// validate 设置默认值并验证配置
func (c *Config) validate() error {
	if c.Name == "" {
		c.Name = "config"
	}
	if c.Paths == nil {
		c.Paths = []string{".", "./config"}
	}
	if c.FileType == "" {
		c.FileType = "yaml"
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = "SNOWID"
	}
	c.EnvPrefix = strings.ToUpper(c.EnvPrefix)
	return nil
}

// New 创建配置加载器。
//
// 如果 cfg 为 nil，使用默认配置。
func New(cfg *Config) (Loader, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return newLoader(cfg), nil
}

// MustLoad 创建加载器并立即加载配置，出错时 panic。
// 仅用于初始化阶段。
func MustLoad(cfg *Config) Loader {
	loader, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	if err := loader.Load(context.Background()); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return loader
}
