// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// TileType 定义地块的类型
type TileType int

const (
	// TileNone 空地块（哨兵值），表示格子存在但没有铺设任何地块
	TileNone TileType = iota
	// TileGeneric 通用地块
	TileGeneric
	// TileGrass 草地
	TileGrass
	// TileDirt 泥地
	TileDirt
	// TileStone 石地
	TileStone
	// TileWater 水面
	TileWater
)

// tileTypeNames 按枚举顺序排列的名称表
var tileTypeNames = [...]string{
	TileNone:    "None",
	TileGeneric: "Generic",
	TileGrass:   "Grass",
	TileDirt:    "Dirt",
	TileStone:   "Stone",
	TileWater:   "Water",
}

// String 返回地块类型的字符串表示
func (t TileType) String() string {
	if t < 0 || int(t) >= len(tileTypeNames) {
		return "Unknown"
	}
	return tileTypeNames[t]
}

// IsEmpty 是否为空地块哨兵值
func (t TileType) IsEmpty() bool {
	return t == TileNone
}

// Next 返回下一个可铺设的地块类型（跳过 TileNone），用于循环切换
func (t TileType) Next() TileType {
	next := t + 1
	if int(next) >= len(tileTypeNames) {
		next = TileGeneric
	}
	return next
}

// ParseTileType 根据名称解析地块类型（不区分大小写）
// 返回:
//   - TileType: 解析结果
//   - bool: 名称是否可识别
func ParseTileType(name string) (TileType, bool) {
	for i, n := range tileTypeNames {
		if strings.EqualFold(n, name) {
			return TileType(i), true
		}
	}
	return TileNone, false
}

// AllTileTypes 返回所有可铺设的地块类型（不含 TileNone）
func AllTileTypes() []TileType {
	result := make([]TileType, 0, len(tileTypeNames)-1)
	for i := TileGeneric; int(i) < len(tileTypeNames); i++ {
		result = append(result, i)
	}
	return result
}
