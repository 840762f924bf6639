package components

import "github.com/gonewx/tilebuild/pkg/types"

// ThingComponent 标记实体为放置在格子上的物件（如墙）
type ThingComponent struct {
	Kind   types.ThingKind
	Coord  types.GridCoord
	Width  int
	Height int

	// Blocking 是否阻挡通行
	Blocking bool
}
