package tsid

import (
	"github.com/qeeqez/snowid/xerrors"
)

const (
	// TimestampBits 时间戳占用的固定位数
	TimestampBits = 42

	// TotalNodeAndSequenceBits 节点位与序列号位的固定总和
	TotalNodeAndSequenceBits = 22

	// DefaultNodeBits 默认节点位宽 (1024 个节点，每毫秒 4096 个序列号)
	DefaultNodeBits = 10

	// DefaultCustomEpoch 默认自定义纪元: 2024-01-01T00:00:00Z (毫秒)
	DefaultCustomEpoch uint64 = 1704067200000
)

// ========================================
// 配置结构 (Configuration)
// ========================================

// Config TSID 生成器配置
//
// NodeBits 与 SequenceBits 之和固定为 22，SequenceBits 由 NodeBits 派生，
// 不能单独配置。构建后不可变。
type Config struct {
	// NodeBits 节点 ID 占用的位数 [1, 20]
	NodeBits int `yaml:"node_bits" json:"node_bits" mapstructure:"node_bits"`

	// CustomEpoch 自定义纪元，Unix 纪元以来的毫秒数
	// 生成的时间戳以此为零点，使用较近的纪元可以最大化 42 位时间戳的可用范围
	CustomEpoch uint64 `yaml:"custom_epoch" json:"custom_epoch" mapstructure:"custom_epoch"`
}

// DefaultConfig 返回默认配置: 10 位节点 + 12 位序列号，纪元 2024-01-01
func DefaultConfig() Config {
	return Config{
		NodeBits:    DefaultNodeBits,
		CustomEpoch: DefaultCustomEpoch,
	}
}

// SequenceBits 返回序列号位数，由 NodeBits 派生
func (c Config) SequenceBits() int {
	return TotalNodeAndSequenceBits - c.NodeBits
}

func (c *Config) setDefaults() {
	if c.NodeBits == 0 {
		c.NodeBits = DefaultNodeBits
	}
	if c.CustomEpoch == 0 {
		c.CustomEpoch = DefaultCustomEpoch
	}
}

func (c *Config) validate() error {
	if c.NodeBits < 1 || c.NodeBits > 20 {
		return xerrors.WithCode(ErrInvalidInput, "node_bits_out_of_range")
	}
	return nil
}

// ========================================
// 配置构建器 (Configuration Builder)
// ========================================

// ConfigBuilder 链式构建 Config
//
// 使用示例:
//
//	cfg, err := tsid.NewConfigBuilder().
//	    NodeBits(12).
//	    CustomEpoch(1704067200000).
//	    Build()
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder 创建使用默认值初始化的构建器
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

// NodeBits 设置节点 ID 位数 [1, 20]
// 序列号位数自动派生为 (22 - bits)
func (b *ConfigBuilder) NodeBits(bits int) *ConfigBuilder {
	b.config.NodeBits = bits
	return b
}

// CustomEpoch 设置自定义纪元 (Unix 纪元以来的毫秒数)
//
// 纪元不能晚于当前时间，否则生成器构造会失败。
func (b *ConfigBuilder) CustomEpoch(epochMillis uint64) *ConfigBuilder {
	b.config.CustomEpoch = epochMillis
	return b
}

// Build 校验并返回最终 Config
//
// NodeBits 超出 [1, 20] 时返回带 "node_bits_out_of_range" 错误码的错误。
// 这是编程错误，应在进程启动阶段发现；初始化路径可用 xerrors.Must 包装。
func (b *ConfigBuilder) Build() (Config, error) {
	cfg := b.config
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
