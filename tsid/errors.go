package tsid

import "github.com/qeeqez/snowid/xerrors"

var (
	// ErrInvalidInput 无效的输入 (节点位宽或节点 ID 超出范围)
	ErrInvalidInput = xerrors.New("tsid: invalid input")

	// ErrEpochInFuture 自定义纪元晚于当前墙钟时间
	ErrEpochInFuture = xerrors.New("tsid: custom epoch is in the future")
)
