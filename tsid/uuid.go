package tsid

import (
	"github.com/google/uuid"
)

// 除 TSID 外提供 UUID 便捷函数，供不需要数字主键或节点分配的场景使用。

// NewUUIDV7 生成 UUID v7 (时间排序)
//
// 与 TSID 一样按时间排序，但为 128 位字符串形式，无需节点 ID。
//
// 使用示例:
//
//	uid := tsid.NewUUIDV7()
func NewUUIDV7() string {
	v7, _ := uuid.NewV7()
	return v7.String()
}

// NewUUIDV4 生成 UUID v4 (随机)
// 适用于不需要时间排序的场景
func NewUUIDV4() string {
	return uuid.New().String()
}
