package build

import (
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
	"go.uber.org/zap"
)

// 放置物件时使用的固定参数
const (
	DefaultThingWidth  = 1
	DefaultThingHeight = 1
	DefaultThingKind   = types.ThingWall
	DefaultThingFlags  = world.ThingBlocking
)

// CommitResult 一次提交的结果摘要
type CommitResult struct {
	Mode BuildMode

	// Aborted 提交目标无效，未执行任何操作
	Aborted bool

	// Applied 实际被修改的格子数
	Applied int

	// Skipped 因格子状态不满足条件而跳过的格子数
	Skipped int

	// MeshRefreshed 是否触发了网格重建
	MeshRefreshed bool
}

// Dispatcher 建造指令分发器
// 提交时读取当前建造模式，对 SelectionResolver 的当前选区执行批量操作
type Dispatcher struct {
	grid      GridStore
	things    ThingFactory
	selection *SelectionResolver
	logger    *zap.Logger

	mode     BuildMode
	tileType types.TileType
}

// NewDispatcher 创建分发器，初始模式为 ModePlaceTile，当前地块类型为 Generic
func NewDispatcher(grid GridStore, things ThingFactory, selection *SelectionResolver, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		grid:      grid,
		things:    things,
		selection: selection,
		logger:    logger.Named("build"),
		mode:      ModePlaceTile,
		tileType:  types.TileGeneric,
	}
}

// Mode 当前建造模式
func (d *Dispatcher) Mode() BuildMode {
	return d.mode
}

// SetMode 根据 UI 指令名切换模式，无法识别的名称被忽略
func (d *Dispatcher) SetMode(name string) {
	if m, ok := ModeFromCommand(name); ok {
		d.mode = m
	}
}

// SetBuildMode 直接设置模式（Interact 只能通过这里设置），非法值被忽略
func (d *Dispatcher) SetBuildMode(m BuildMode) {
	if m.Valid() {
		d.mode = m
	}
}

// TileType 当前铺设的地块类型
func (d *Dispatcher) TileType() types.TileType {
	return d.tileType
}

// SetTileType 设置铺设的地块类型
func (d *Dispatcher) SetTileType(t types.TileType) {
	d.tileType = t
}

// Commit 按当前模式对选区执行操作
//
// 先无条件清除预览；anchor 不在任何格子上时记录错误并放弃整次提交。
// 选区本身不会被清空，可以对同一选区连续提交。
func (d *Dispatcher) Commit(anchor types.WorldPos) CommitResult {
	d.selection.ClearPreview()

	anchorCoord := types.ToGridCoord(anchor)
	_, anchorOK := d.grid.CellAt(anchorCoord)
	cells, stale := d.resolveCells(d.selection.selection)

	if !anchorOK || cells == nil {
		d.logger.Error("invalid commit target, nothing applied",
			zap.Stringer("anchor", anchorCoord),
			zap.Bool("anchorResolved", anchorOK),
			zap.Stringer("mode", d.mode))
		return CommitResult{Mode: d.mode, Aborted: true}
	}

	var result CommitResult
	switch d.mode {
	case ModePlaceTile:
		result = d.applyTileType(cells, d.tileType)
	case ModeRemoveTile:
		result = d.applyTileType(cells, types.TileNone)
	case ModePlaceThing:
		result = d.buildThings(cells)
	case ModeRemoveThing:
		result = d.deleteThings(cells)
	case ModeInteract:
	}

	result.Mode = d.mode
	result.Skipped += stale
	d.logger.Debug("commit applied",
		zap.Stringer("mode", d.mode),
		zap.Int("selected", len(cells)+stale),
		zap.Int("applied", result.Applied),
		zap.Int("skipped", result.Skipped))
	return result
}

// resolveCells 将坐标解析为格子
// 已不存在的坐标（例如地图被重新加载）计入 stale 并跳过；返回的切片总是非 nil
func (d *Dispatcher) resolveCells(coords []types.GridCoord) ([]*world.Cell, int) {
	cells := make([]*world.Cell, 0, len(coords))
	stale := 0
	for _, coord := range coords {
		cell, ok := d.grid.CellAt(coord)
		if !ok {
			stale++
			continue
		}
		cells = append(cells, cell)
	}
	return cells, stale
}

// applyTileType 批量修改地块类型，结束后只触发一次网格重建
func (d *Dispatcher) applyTileType(cells []*world.Cell, t types.TileType) CommitResult {
	for _, cell := range cells {
		d.grid.SetTileType(cell, t)
	}
	d.grid.RequestMeshRefresh()
	return CommitResult{Applied: len(cells), MeshRefreshed: true}
}

// buildThings 在非空且空闲的格子上放置墙
func (d *Dispatcher) buildThings(cells []*world.Cell) CommitResult {
	var result CommitResult
	for _, cell := range cells {
		if cell.Type.IsEmpty() || cell.Thing != nil {
			result.Skipped++
			continue
		}
		if _, err := d.things.CreateThing(cell, DefaultThingWidth, DefaultThingHeight, DefaultThingFlags, DefaultThingKind); err != nil {
			d.logger.Warn("create thing failed",
				zap.Stringer("coord", cell.Coord), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Applied++
	}
	return result
}

// deleteThings 销毁格子上的物件，没有物件的格子跳过
func (d *Dispatcher) deleteThings(cells []*world.Cell) CommitResult {
	var result CommitResult
	for _, cell := range cells {
		if cell.Thing == nil {
			result.Skipped++
			continue
		}
		cell.Thing.Destroy()
		result.Applied++
	}
	return result
}
