package tsid

import (
	"testing"

	"github.com/qeeqez/snowid/xerrors"
)

// ========================================
// Config 单元测试
// ========================================

func TestDefaultConfig_Unit(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NodeBits != 10 {
		t.Errorf("Expected default node bits 10, got %d", cfg.NodeBits)
	}
	if cfg.SequenceBits() != 12 {
		t.Errorf("Expected default sequence bits 12, got %d", cfg.SequenceBits())
	}
	if cfg.CustomEpoch != 1704067200000 {
		t.Errorf("Expected default epoch 1704067200000, got %d", cfg.CustomEpoch)
	}
}

func TestConfigBuilder_Unit(t *testing.T) {
	tests := []struct {
		name        string
		nodeBits    int
		expectError bool
	}{
		{"min node bits", 1, false},
		{"default node bits", 10, false},
		{"max node bits", 20, false},
		{"node bits too small", -1, true},
		{"node bits too large", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigBuilder().NodeBits(tt.nodeBits).Build()
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
					return
				}
				if !xerrors.Is(err, ErrInvalidInput) {
					t.Errorf("Expected ErrInvalidInput, got %v", err)
				}
				if xerrors.GetCode(err) != "node_bits_out_of_range" {
					t.Errorf("Expected code node_bits_out_of_range, got %q", xerrors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if cfg.NodeBits != tt.nodeBits {
				t.Errorf("Expected node bits %d, got %d", tt.nodeBits, cfg.NodeBits)
			}
			// 节点位与序列号位之和恒为 22
			if cfg.NodeBits+cfg.SequenceBits() != TotalNodeAndSequenceBits {
				t.Errorf("Expected node+sequence bits %d, got %d",
					TotalNodeAndSequenceBits, cfg.NodeBits+cfg.SequenceBits())
			}
		})
	}
}

func TestConfigBuilderCustomEpoch_Unit(t *testing.T) {
	cfg, err := NewConfigBuilder().
		NodeBits(12).
		CustomEpoch(1577836800000). // 2020-01-01
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.CustomEpoch != 1577836800000 {
		t.Errorf("Expected epoch 1577836800000, got %d", cfg.CustomEpoch)
	}
	if cfg.NodeBits != 12 || cfg.SequenceBits() != 10 {
		t.Errorf("Expected 12/10 bit split, got %d/%d", cfg.NodeBits, cfg.SequenceBits())
	}
}

// ========================================
// 位布局单元测试
// ========================================

func TestBitLayout_Unit(t *testing.T) {
	tests := []struct {
		name        string
		nodeBits    int
		maxNode     uint32
		maxSequence uint32
		nodeShift   uint
	}{
		{"default 10 bits", 10, 1023, 4095, 12},
		{"12 node bits", 12, 4095, 1023, 10},
		{"1 node bit", 1, 1, 2097151, 21},
		{"20 node bits", 20, 1048575, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigBuilder().NodeBits(tt.nodeBits).Build()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			layout := newBitLayout(cfg)

			if layout.maxNode != tt.maxNode {
				t.Errorf("Expected max node %d, got %d", tt.maxNode, layout.maxNode)
			}
			if layout.maxSequence != tt.maxSequence {
				t.Errorf("Expected max sequence %d, got %d", tt.maxSequence, layout.maxSequence)
			}
			if layout.nodeShift != tt.nodeShift {
				t.Errorf("Expected node shift %d, got %d", tt.nodeShift, layout.nodeShift)
			}
			// 时间戳移位恒为 22，掩码恒为 42 位全 1
			if layout.timestampShift != TotalNodeAndSequenceBits {
				t.Errorf("Expected timestamp shift 22, got %d", layout.timestampShift)
			}
			if layout.timestampMask != (uint64(1)<<TimestampBits)-1 {
				t.Errorf("Unexpected timestamp mask %x", layout.timestampMask)
			}
		})
	}
}
