package types

import "strings"

// ThingKind 定义放置在格子上的物件类型
type ThingKind int

const (
	// ThingUnknown 未知物件类型
	ThingUnknown ThingKind = iota
	// ThingWall 墙
	ThingWall
)

// String 返回物件类型的字符串表示
func (k ThingKind) String() string {
	switch k {
	case ThingWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// ParseThingKind 根据名称解析物件类型（不区分大小写）
func ParseThingKind(name string) (ThingKind, bool) {
	if strings.EqualFold(name, "wall") {
		return ThingWall, true
	}
	return ThingUnknown, false
}
