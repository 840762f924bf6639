package components

import "github.com/gonewx/tilebuild/pkg/types"

// PreviewTileComponent 标记实体为选区预览图块
// 由预览池持有，Active 为 true 时表示正被选区借用
type PreviewTileComponent struct {
	// Name 预览图块名称，借用期间为 "PreviewTile[x,y]"
	Name string

	// Coord 当前绑定的网格坐标（仅 Active 时有效）
	Coord types.GridCoord

	// Active 是否正被借用
	Active bool
}
