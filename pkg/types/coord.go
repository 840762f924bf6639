package types

import (
	"fmt"
	"math"
)

// GridCoord 网格坐标，按值比较
type GridCoord struct {
	X int
	Y int
}

// String 返回 "(x,y)" 形式的坐标
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// WorldPos 世界坐标
// Y 轴为竖直方向，平面坐标为 X 和 Z
type WorldPos struct {
	X float64
	Y float64
	Z float64
}

// ToGridCoord 将世界坐标转换为网格坐标
// 对两个平面分量向下取整（不是四舍五入），竖直分量被忽略
func ToGridCoord(p WorldPos) GridCoord {
	return GridCoord{
		X: int(math.Floor(p.X)),
		Y: int(math.Floor(p.Z)),
	}
}

// ToWorldPos 返回格子原点的世界坐标，lift 为竖直偏移
func (c GridCoord) ToWorldPos(lift float64) WorldPos {
	return WorldPos{X: float64(c.X), Y: lift, Z: float64(c.Y)}
}
