package components

// PositionComponent 存储实体的世界坐标
// Y 为竖直方向，X/Z 为地图平面
type PositionComponent struct {
	X float64
	Y float64
	Z float64
}
