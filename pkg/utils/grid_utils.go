package utils

import (
	"math"

	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/types"
)

// GridLayout 网格在屏幕上的摆放参数
// 屏幕 x 对应世界 X，屏幕 y 对应世界 Z
type GridLayout struct {
	OriginX  float64 // 网格左上角屏幕X坐标
	OriginY  float64 // 网格左上角屏幕Y坐标
	CellSize float64 // 每格边长（像素）
}

// NewGridLayout 根据配置创建网格摆放参数
func NewGridLayout(cfg config.GridConfig) GridLayout {
	size := cfg.CellSize
	if size <= 0 {
		size = config.DefaultCellSize
	}
	return GridLayout{OriginX: cfg.OriginX, OriginY: cfg.OriginY, CellSize: size}
}

// ScreenToWorld 将屏幕坐标转换为世界坐标
// 结果不取整，格子内的位置保留为小数部分；Y 分量恒为 0
//
// 参数:
//   - x, y: 屏幕坐标
//
// 返回:
//   - types.WorldPos: 对应的世界坐标
func (g GridLayout) ScreenToWorld(x, y int) types.WorldPos {
	return types.WorldPos{
		X: (float64(x) - g.OriginX) / g.CellSize,
		Z: (float64(y) - g.OriginY) / g.CellSize,
	}
}

// ScreenToGrid 将屏幕坐标转换为网格坐标（向下取整，可能为负）
func (g GridLayout) ScreenToGrid(x, y int) types.GridCoord {
	return types.ToGridCoord(g.ScreenToWorld(x, y))
}

// GridToScreen 返回格子左上角的屏幕坐标
func (g GridLayout) GridToScreen(c types.GridCoord) (float64, float64) {
	return g.OriginX + float64(c.X)*g.CellSize, g.OriginY + float64(c.Y)*g.CellSize
}

// WorldToScreen 将世界坐标的平面分量转换为屏幕坐标
func (g GridLayout) WorldToScreen(p types.WorldPos) (float64, float64) {
	return g.OriginX + p.X*g.CellSize, g.OriginY + p.Z*g.CellSize
}

// FitOrigin 计算使 width x height 的网格在屏幕上居中的原点
func (g GridLayout) FitOrigin(screenW, screenH, width, height int) GridLayout {
	g.OriginX = math.Floor((float64(screenW) - float64(width)*g.CellSize) / 2)
	g.OriginY = math.Floor((float64(screenH) - float64(height)*g.CellSize) / 2)
	return g
}
