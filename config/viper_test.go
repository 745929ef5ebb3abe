package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoaderLoad 测试配置加载的完整流程
func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "config.yaml")
	configContent := `
tsid:
  node_bits: 12
  custom_epoch: 1704067200000
clog:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o644))

	loader, err := New(&Config{
		Name:      "config",
		Paths:     []string{tmpDir},
		FileType:  "yaml",
		EnvPrefix: "SNOWID",
	})
	require.NoError(t, err)

	require.NoError(t, loader.Load(context.Background()))

	assert.EqualValues(t, 12, loader.Get("tsid.node_bits"))
	assert.Equal(t, "debug", loader.Get("clog.level"))
}

// TestLoaderEnvOverride 测试环境变量优先于配置文件
func TestLoaderEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("tsid:\n  node_bits: 10\n"), 0o644))

	t.Setenv("SNOWID_TSID_NODE_BITS", "14")

	loader := MustLoad(&Config{
		Paths:     []string{tmpDir},
		EnvPrefix: "SNOWID",
	})

	assert.Equal(t, "14", loader.Get("tsid.node_bits"))
}

// TestLoaderUnmarshalKey 测试反序列化指定 key
func TestLoaderUnmarshalKey(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "config.yaml")
	configContent := `
tsid:
  node_bits: 8
  custom_epoch: 1577836800000
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o644))

	loader := MustLoad(&Config{Paths: []string{tmpDir}})

	var cfg struct {
		NodeBits    int    `mapstructure:"node_bits"`
		CustomEpoch uint64 `mapstructure:"custom_epoch"`
	}
	require.NoError(t, loader.UnmarshalKey("tsid", &cfg))
	assert.Equal(t, 8, cfg.NodeBits)
	assert.Equal(t, uint64(1577836800000), cfg.CustomEpoch)
}

// TestLoaderMissingFile 测试缺失配置文件时仍可工作（纯环境变量模式）
func TestLoaderMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("SNOWID_TSID_NODE_BITS", "6")

	loader, err := New(&Config{Paths: []string{tmpDir}})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	assert.Equal(t, "6", loader.Get("tsid.node_bits"))
}

// TestLoaderWatch 测试配置热更新通知
func TestLoaderWatch(t *testing.T) {
	tmpDir := t.TempDir()

	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("tsid:\n  node_bits: 10\n"), 0o644))

	loader := MustLoad(&Config{Paths: []string{tmpDir}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := loader.Watch(ctx, "tsid.node_bits")
	require.NoError(t, err)

	// 修改配置文件触发变更事件
	require.NoError(t, os.WriteFile(configFile, []byte("tsid:\n  node_bits: 12\n"), 0o644))

	select {
	case event := <-ch:
		assert.Equal(t, "tsid.node_bits", event.Key)
		assert.EqualValues(t, 12, event.Value)
	case <-time.After(3 * time.Second):
		t.Skip("file watch event not delivered in time (fs notification timing)")
	}
}

// TestDefaults 测试默认配置值
func TestDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.validate())

	assert.Equal(t, "config", cfg.Name)
	assert.Equal(t, "yaml", cfg.FileType)
	assert.Equal(t, "SNOWID", cfg.EnvPrefix)
	assert.Equal(t, []string{".", "./config"}, cfg.Paths)
}
