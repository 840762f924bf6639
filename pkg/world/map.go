// Package world 提供地块地图（格子存储）与格子物件的生命周期管理
//
// Map 是编辑器唯一的格子数据来源：
//   - 按网格坐标查询格子，空洞（void）和越界坐标都视为不存在
//   - 修改地块类型
//   - 批量修改后由调用方触发一次网格重建（RequestMeshRefresh）
package world

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/types"
)

// Cell 地图中的一个格子
type Cell struct {
	Coord types.GridCoord
	Type  types.TileType
	Thing *Thing // 占用该格子的物件，nil 表示空闲
}

// HasThing 格子上是否有物件
func (c *Cell) HasThing() bool {
	return c.Thing != nil
}

// MeshRefreshFunc 网格重建回调，version 为重建后的版本号
type MeshRefreshFunc func(version uint64)

// Map 矩形地块地图
// 允许存在空洞：cells 中为 nil 的位置在 CellAt 中视为不存在
type Map struct {
	name   string
	width  int
	height int
	cells  []*Cell // 按 [y*width + x] 存储

	meshVersion uint64
	listeners   []MeshRefreshFunc
}

// NewMap 创建一个所有格子都存在的地图
//
// 参数:
//   - width, height: 地图尺寸，必须为正数
//   - fill: 初始地块类型
func NewMap(width, height int, fill types.TileType) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}

	m := &Map{
		width:  width,
		height: height,
		cells:  make([]*Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[y*width+x] = &Cell{
				Coord: types.GridCoord{X: x, Y: y},
				Type:  fill,
			}
		}
	}
	return m, nil
}

// Name 地图名称（来自布局文件，可为空）
func (m *Map) Name() string { return m.name }

// Width 地图宽度（格子数）
func (m *Map) Width() int { return m.width }

// Height 地图高度（格子数）
func (m *Map) Height() int { return m.height }

// inBounds 坐标是否落在地图矩形内
func (m *Map) inBounds(c types.GridCoord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// CellAt 查询指定网格坐标的格子
// 返回:
//   - *Cell: 格子
//   - bool: false 表示越界或空洞
func (m *Map) CellAt(c types.GridCoord) (*Cell, bool) {
	if !m.inBounds(c) {
		return nil, false
	}
	cell := m.cells[c.Y*m.width+c.X]
	return cell, cell != nil
}

// CellAtWorld 查询世界坐标所在的格子
func (m *Map) CellAtWorld(p types.WorldPos) (*Cell, bool) {
	return m.CellAt(types.ToGridCoord(p))
}

// SetTileType 修改格子的地块类型
// 不会自动触发网格重建，批量修改结束后需调用 RequestMeshRefresh
func (m *Map) SetTileType(cell *Cell, t types.TileType) {
	if cell == nil {
		return
	}
	cell.Type = t
}

// RequestMeshRefresh 请求重建地图网格
func (m *Map) RequestMeshRefresh() {
	m.meshVersion++
	for _, fn := range m.listeners {
		fn(m.meshVersion)
	}
}

// MeshVersion 返回当前网格版本号，每次 RequestMeshRefresh 递增
func (m *Map) MeshVersion() uint64 {
	return m.meshVersion
}

// OnMeshRefresh 注册网格重建回调
func (m *Map) OnMeshRefresh(fn MeshRefreshFunc) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Cells 按 x 优先的扫描顺序返回所有存在的格子
func (m *Map) Cells() []*Cell {
	result := make([]*Cell, 0, len(m.cells))
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			if cell := m.cells[y*m.width+x]; cell != nil {
				result = append(result, cell)
			}
		}
	}
	return result
}

// carve 将指定坐标变为空洞，仅供布局加载使用
func (m *Map) carve(c types.GridCoord) {
	if m.inBounds(c) {
		m.cells[c.Y*m.width+c.X] = nil
	}
}
