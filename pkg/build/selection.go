package build

import (
	"github.com/gonewx/tilebuild/pkg/pool"
	"github.com/gonewx/tilebuild/pkg/types"
	"go.uber.org/zap"
)

// DefaultPreviewLift 预览图块相对地块表面的竖直偏移
const DefaultPreviewLift = 0.01

const maxPreallocCoords = 4096

// SelectionResolver 拖拽选区解析器
//
// 每次 UpdateSelection 都完整重算选区（不做增量），并整体重建预览：
//   - 选区内任一格子不存在时整次解析作废，之前的选区、预览、LastSelection 保持不变
//   - 成功时归还旧的预览句柄，为每个坐标借出一个新句柄
type SelectionResolver struct {
	grid     GridStore
	previews PreviewPool
	logger   *zap.Logger
	lift     float64

	selection []types.GridCoord
	last      []types.GridCoord
	handles   []*pool.PreviewHandle
}

// NewSelectionResolver 创建选区解析器
//
// 参数:
//   - grid: 格子存储
//   - previews: 预览图块池
//   - lift: 预览图块的竖直偏移，通常为 DefaultPreviewLift
//   - logger: 日志，可为 nil
func NewSelectionResolver(grid GridStore, previews PreviewPool, lift float64, logger *zap.Logger) *SelectionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionResolver{
		grid:     grid,
		previews: previews,
		logger:   logger.Named("selection"),
		lift:     lift,
	}
}

// UpdateSelection 根据起始锚点与当前锚点重算选区
//
// 当前锚点不在任何格子上时直接返回（不修改任何状态）。
// 两个锚点按平面分量向下取整后，逐轴取 min/max，按 x 优先遍历闭区间；
// 遇到第一个不存在的格子即放弃本次解析。
//
// 返回:
//   - bool: 选区是否被更新
func (r *SelectionResolver) UpdateSelection(start, current types.WorldPos) bool {
	if _, ok := r.grid.CellAt(types.ToGridCoord(current)); !ok {
		return false
	}

	from := types.ToGridCoord(start)
	to := types.ToGridCoord(current)

	minX, maxX := from.X, to.X
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	minY, maxY := from.Y, to.Y
	if maxY < minY {
		minY, maxY = maxY, minY
	}

	// 起点可能远在地图之外，预分配容量需要封顶
	span := (maxX - minX + 1) * (maxY - minY + 1)
	if span <= 0 || span > maxPreallocCoords {
		span = maxPreallocCoords
	}
	next := make([]types.GridCoord, 0, span)
	seen := make(map[types.GridCoord]struct{}, span)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			coord := types.GridCoord{X: x, Y: y}
			if _, ok := r.grid.CellAt(coord); !ok {
				r.logger.Debug("tile out of range, selection kept",
					zap.Int("x", x), zap.Int("y", y))
				return false
			}
			if _, dup := seen[coord]; dup {
				continue
			}
			seen[coord] = struct{}{}
			next = append(next, coord)
		}
	}

	r.apply(next)
	return true
}

// apply 替换当前选区，重建预览并记录 LastSelection
func (r *SelectionResolver) apply(next []types.GridCoord) {
	r.ClearPreview()
	r.selection = next
	r.last = cloneCoords(next)

	for _, coord := range r.selection {
		h := r.previews.Acquire()
		h.Place(coord, r.lift)
		r.handles = append(r.handles, h)
	}
}

// ClearPreview 归还所有预览句柄
// 可重复调用，返回本次归还的句柄数量
func (r *SelectionResolver) ClearPreview() int {
	released := len(r.handles)
	if released == 0 {
		return 0
	}
	for _, h := range r.handles {
		r.previews.Release(h)
	}
	r.handles = r.handles[:0]
	return released
}

// Reset 清空预览与当前选区，LastSelection 保留
func (r *SelectionResolver) Reset() {
	r.ClearPreview()
	r.selection = nil
}

// Selection 返回当前选区的副本
func (r *SelectionResolver) Selection() []types.GridCoord {
	return cloneCoords(r.selection)
}

// LastSelection 返回最近一次成功解析的选区副本
func (r *SelectionResolver) LastSelection() []types.GridCoord {
	return cloneCoords(r.last)
}

// SetLastSelection 设置 LastSelection（用于从存档恢复），不影响当前选区与预览
func (r *SelectionResolver) SetLastSelection(coords []types.GridCoord) {
	r.last = cloneCoords(coords)
}

// RestoreLastSelection 将 LastSelection 重新作为当前选区
// 与 UpdateSelection 一样是全有或全无：任一坐标已不存在则不做修改
func (r *SelectionResolver) RestoreLastSelection() bool {
	if len(r.last) == 0 {
		return false
	}
	for _, coord := range r.last {
		if _, ok := r.grid.CellAt(coord); !ok {
			r.logger.Debug("last selection no longer fits the map",
				zap.Int("x", coord.X), zap.Int("y", coord.Y))
			return false
		}
	}
	r.apply(cloneCoords(r.last))
	return true
}

// PreviewHandles 返回当前持有的预览句柄副本
func (r *SelectionResolver) PreviewHandles() []*pool.PreviewHandle {
	result := make([]*pool.PreviewHandle, len(r.handles))
	copy(result, r.handles)
	return result
}

// cloneCoords 复制坐标切片，nil 保持为 nil
func cloneCoords(coords []types.GridCoord) []types.GridCoord {
	if coords == nil {
		return nil
	}
	result := make([]types.GridCoord, len(coords))
	copy(result, coords)
	return result
}
