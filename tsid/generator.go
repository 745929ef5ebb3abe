// Package tsid 提供 64 位时间有序唯一 ID (TSID) 的本地生成能力。
//
// TSID 由三个字段从高到低打包而成:
//
//	42 位时间戳 (相对自定义纪元的毫秒数) | 节点 ID (可配置位宽) | 序列号 (剩余位)
//
// 数值比较即为时间顺序，适合作为数据库主键。同一实例上的并发调用
// 通过无锁原子操作保证唯一且单调不减，无需任何外部协调；跨实例的
// 唯一性依赖调用方为每个实例分配不同的节点 ID（分配机制在本包范围之外）。
package tsid

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/qeeqez/snowid/clog"
	"github.com/qeeqez/snowid/metrics"
	"github.com/qeeqez/snowid/xerrors"
)

// Generator TSID 生成器
//
// 可变状态只有 lastTimestamp 和 sequence，全部通过原子操作维护，
// Generate 可以在多个 goroutine 上对同一实例并发调用，无需外部加锁。
type Generator struct {
	nodeID        uint32
	sequence      atomic.Uint32
	lastTimestamp atomic.Uint64
	config        Config
	layout        bitLayout

	logger clog.Logger

	// 可选指标，未配置 Meter 时为 nil，热路径上只付出一次判空
	generated metrics.Counter
	exhausted metrics.Counter
	nodeLabel metrics.Label
}

// New 创建 TSID 生成器
//
// 参数:
//   - nodeID: 节点 ID，[0, MaxNodeID]，由调用方的外部机制分配
//   - cfg: 配置，零值字段使用默认值 (10 位节点，纪元 2024-01-01)
//   - opts: 可选参数 (Logger, Meter)
//
// 节点 ID 超出配置允许的最大值、节点位宽非法、或纪元晚于当前时间时
// 返回错误。这些都是编程/配置错误，必须在发出任何 ID 之前（通常是
// 进程启动阶段）暴露，不存在带病运行的降级模式。
//
// 使用示例:
//
//	gen, err := tsid.New(42, tsid.DefaultConfig())
//	if err != nil {
//	    panic(err)
//	}
//	id := gen.Generate()
func New(nodeID uint32, cfg Config, opts ...Option) (*Generator, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := Options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.Logger == nil {
		opt.Logger = clog.Discard()
	}
	logger := opt.Logger.WithNamespace("tsid")

	layout := newBitLayout(cfg)
	if nodeID > layout.maxNode {
		return nil, xerrors.WithCode(
			xerrors.Wrapf(ErrInvalidInput, "node_id %d exceeds max %d", nodeID, layout.maxNode),
			"node_id_out_of_range")
	}

	// 纪元晚于当前时间会让时间戳减法下溢，必须在构造期拒绝
	if now := time.Now().UnixMilli(); now < 0 || uint64(now) < cfg.CustomEpoch {
		return nil, xerrors.WithCode(
			xerrors.Wrapf(ErrEpochInFuture, "epoch %d ms, now %d ms", cfg.CustomEpoch, now),
			"epoch_in_future")
	}

	g := &Generator{
		nodeID: nodeID,
		config: cfg,
		layout: layout,
		logger: logger,
	}

	if opt.Meter != nil {
		generated, err := opt.Meter.Counter(MetricGenerated, "TSID 生成总数")
		if err != nil {
			return nil, fmt.Errorf("create generated counter: %w", err)
		}
		exhausted, err := opt.Meter.Counter(MetricSequenceExhausted, "tick 内序列号耗尽次数")
		if err != nil {
			return nil, fmt.Errorf("create exhausted counter: %w", err)
		}
		g.generated = generated
		g.exhausted = exhausted
		g.nodeLabel = metrics.L("node_id", strconv.FormatUint(uint64(nodeID), 10))
	}

	logger.Info("tsid generator created",
		clog.Uint64("node_id", uint64(nodeID)),
		clog.Int("node_bits", cfg.NodeBits),
		clog.Int("sequence_bits", cfg.SequenceBits()),
		clog.Uint64("custom_epoch", cfg.CustomEpoch),
	)

	return g, nil
}

// Must 类似 New，但出错时 panic。仅用于初始化阶段。
func Must(nodeID uint32, cfg Config, opts ...Option) *Generator {
	g, err := New(nodeID, cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("tsid: %v", err))
	}
	return g
}

// Generate 生成一个新的 TSID
//
// 对同一实例的并发调用永不重复、时间戳字段永不回退。无错误返回:
// 瞬时竞争通过内部重试消化，单个 tick 的序列号空间耗尽时忙自旋等待
// 墙钟前进，调用方观察到的是延迟升高而不是失败。
//
// 时钟回拨时 tick 固定在 lastTimestamp 上继续发号，直到真实时间追上,
// 这是以吞吐换单调性的刻意取舍。墙钟落到纪元之前属于致命配置错误,
// 直接 panic。
func (g *Generator) Generate() uint64 {
	for {
		timestamp := g.currentTime()
		last := g.lastTimestamp.Load()

		// 时钟前进: CAS 推进 tick 并重置序列号
		if timestamp > last {
			if g.lastTimestamp.CompareAndSwap(last, timestamp) {
				g.sequence.Store(0)
				g.recordGenerated()
				return g.pack(timestamp, 0)
			}
			// 其他 goroutine 抢先推进了 tick，丢弃本次读数重来
			continue
		}

		// 时钟未前进或回拨: tick 固定为 last，序列号原子递增。
		// seq 为递增前的旧值
		seq := g.sequence.Add(1) - 1
		if seq < g.layout.maxSequence {
			g.recordGenerated()
			return g.pack(last, seq+1)
		}

		// 本 tick 序列号耗尽，这次递增的槽位作废，自旋到墙钟前进
		g.recordExhausted()
	}
}

// currentTime 返回相对自定义纪元的当前毫秒时间戳
func (g *Generator) currentTime() uint64 {
	now := time.Now().UnixMilli()
	if now < 0 || uint64(now) < g.config.CustomEpoch {
		// 构造期已校验过纪元，运行中走到这里说明墙钟被拨到了纪元之前。
		// 无符号减法会回绕出一个损坏的时间戳，必须立即终止而不是静默发号
		panic(fmt.Sprintf("tsid: wall clock %d ms is before custom epoch %d ms", now, g.config.CustomEpoch))
	}
	return uint64(now) - g.config.CustomEpoch
}

// pack 按位布局将三个字段打包为 64 位 TSID
func (g *Generator) pack(timestamp uint64, sequence uint32) uint64 {
	return (timestamp&g.layout.timestampMask)<<g.layout.timestampShift |
		uint64(g.nodeID&g.layout.nodeMask)<<g.layout.nodeShift |
		uint64(sequence&g.layout.sequenceMask)
}

// ========================================
// 字段提取 (Extraction)
// ========================================

// Extract 将 TSID 分解为 (时间戳, 节点 ID, 序列号)
//
// 纯掩码运算，任何 64 位输入都能分解，没有失败模式，
// 即使输入并非本生成器产出。
func (g *Generator) Extract(id uint64) (timestamp uint64, node uint32, sequence uint32) {
	return g.ExtractTimestamp(id), g.ExtractNode(id), g.ExtractSequence(id)
}

// ExtractTimestamp 提取时间戳字段 (相对自定义纪元的毫秒数)
func (g *Generator) ExtractTimestamp(id uint64) uint64 {
	return id >> g.layout.timestampShift & g.layout.timestampMask
}

// ExtractNode 提取节点 ID 字段
func (g *Generator) ExtractNode(id uint64) uint32 {
	return uint32(id>>g.layout.nodeShift) & g.layout.nodeMask
}

// ExtractSequence 提取序列号字段
func (g *Generator) ExtractSequence(id uint64) uint32 {
	return uint32(id) & g.layout.sequenceMask
}

// ========================================
// 访问器 (Accessors)
// ========================================

// NodeID 返回本实例的节点 ID
func (g *Generator) NodeID() uint32 {
	return g.nodeID
}

// MaxNodeID 返回当前配置支持的最大节点 ID
func (g *Generator) MaxNodeID() uint32 {
	return g.layout.maxNode
}

// MaxSequence 返回当前配置支持的最大序列号
func (g *Generator) MaxSequence() uint32 {
	return g.layout.maxSequence
}

// Config 返回当前配置
func (g *Generator) Config() Config {
	return g.config
}

// Clone 复制生成器，拷贝 lastTimestamp 和 sequence 的当前快照
//
// 克隆体与原实例不共享原子状态，此后各自独立演化。两个克隆体在
// 同一 tick 上可能各自选中相同的序列号，因此并发使用多个克隆体
// 不保证唯一性。需要水平扩展时应为每个实例分配不同的节点 ID，
// 而不是克隆单个实例。
func (g *Generator) Clone() *Generator {
	c := &Generator{
		nodeID:    g.nodeID,
		config:    g.config,
		layout:    g.layout,
		logger:    g.logger,
		generated: g.generated,
		exhausted: g.exhausted,
		nodeLabel: g.nodeLabel,
	}
	c.sequence.Store(g.sequence.Load())
	c.lastTimestamp.Store(g.lastTimestamp.Load())
	return c
}

// ========================================
// 内部辅助 (Internal Helpers)
// ========================================

func (g *Generator) recordGenerated() {
	if g.generated != nil {
		g.generated.Inc(context.Background(), g.nodeLabel)
	}
}

func (g *Generator) recordExhausted() {
	if g.exhausted != nil {
		g.exhausted.Inc(context.Background(), g.nodeLabel)
	}
}
