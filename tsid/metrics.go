package tsid

// Metrics 指标常量定义
const (
	// MetricGenerated TSID 生成总数 (Counter)
	MetricGenerated = "tsid_generated_total"

	// MetricSequenceExhausted 单个 tick 内序列号耗尽次数 (Counter)
	// 每次生成尝试超出当前 tick 的序列号空间并进入自旋时递增
	MetricSequenceExhausted = "tsid_sequence_exhausted_total"
)
