// Package build 实现拖拽选区解析与建造模式分发
//
// SelectionResolver 把两个拖拽锚点转换为去重、校验过的网格坐标集合并维护预览；
// Dispatcher 在提交时按当前建造模式对选区内所有格子执行批量操作。
// 两者只通过下面的接口访问地图、预览池和物件生命周期。
package build

import (
	"github.com/gonewx/tilebuild/pkg/pool"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
)

// GridStore 格子存储
type GridStore interface {
	// CellAt 查询格子，false 表示不存在
	CellAt(coord types.GridCoord) (*world.Cell, bool)
	// SetTileType 修改格子地块类型
	SetTileType(cell *world.Cell, t types.TileType)
	// RequestMeshRefresh 请求重建地图网格
	RequestMeshRefresh()
}

// PreviewPool 预览图块池
type PreviewPool interface {
	Acquire() *pool.PreviewHandle
	Release(h *pool.PreviewHandle)
}

// ThingFactory 物件创建
// 物件的销毁通过 (*world.Thing).Destroy 完成
type ThingFactory interface {
	CreateThing(cell *world.Cell, width, height int, flags world.ThingFlags, kind types.ThingKind) (*world.Thing, error)
}

var (
	_ GridStore    = (*world.Map)(nil)
	_ PreviewPool  = (*pool.PreviewPool)(nil)
	_ ThingFactory = (*world.ThingManager)(nil)
)
