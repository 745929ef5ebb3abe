package tsid

// bitLayout 由 Config 派生的位布局: 各字段的掩码与移位量
//
// 64 位 ID 从高到低依次为: 42 位时间戳 | NodeBits 位节点 | SequenceBits 位序列号。
// 三个字段之外没有任何置位，字段位数之和恒为 64。
// 生成器构造时派生一次并缓存，生命周期内不变。
type bitLayout struct {
	nodeShift      uint
	timestampShift uint
	sequenceMask   uint32
	nodeMask       uint32
	timestampMask  uint64
	maxSequence    uint32
	maxNode        uint32
}

// newBitLayout 从配置派生位布局，纯函数
func newBitLayout(cfg Config) bitLayout {
	nodeShift := uint(cfg.SequenceBits())
	timestampShift := uint(cfg.NodeBits + cfg.SequenceBits())

	sequenceMask := uint32(1)<<cfg.SequenceBits() - 1
	nodeMask := uint32(1)<<cfg.NodeBits - 1
	timestampMask := uint64(1)<<TimestampBits - 1

	return bitLayout{
		nodeShift:      nodeShift,
		timestampShift: timestampShift,
		sequenceMask:   sequenceMask,
		nodeMask:       nodeMask,
		timestampMask:  timestampMask,
		maxSequence:    sequenceMask,
		maxNode:        nodeMask,
	}
}
