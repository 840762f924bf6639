package world

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gonewx/tilebuild/pkg/types"
)

// Layout 地图布局文件（TOML）
//
// 示例:
//
//	name = "meadow"
//	width = 12
//	height = 8
//	default_tile = "Generic"
//	rows = ["gggg....", "#..ss..."]
//
//	[[things]]
//	x = 2
//	y = 3
//	kind = "Wall"
type Layout struct {
	Name        string        `toml:"name"`
	Width       int           `toml:"width"`
	Height      int           `toml:"height"`
	DefaultTile string        `toml:"default_tile"`
	Rows        []string      `toml:"rows"`
	Things      []LayoutThing `toml:"things"`
}

// LayoutThing 布局中预置的物件
type LayoutThing struct {
	X    int    `toml:"x"`
	Y    int    `toml:"y"`
	Kind string `toml:"kind"`
}

// 布局行字符
const (
	runeDefault = '.'
	runeVoid    = '#'
)

// layoutRunes 行字符到地块类型的映射（'.' 与 '#' 单独处理）
var layoutRunes = map[rune]types.TileType{
	'_': types.TileNone,
	'o': types.TileGeneric,
	'g': types.TileGrass,
	'd': types.TileDirt,
	's': types.TileStone,
	'w': types.TileWater,
}

// LoadLayout 从 TOML 文件加载地图布局
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

// ParseLayout 解析 TOML 布局内容
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := toml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if layout.DefaultTile == "" {
		layout.DefaultTile = types.TileGeneric.String()
	}
	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", layout.Name, err)
	}
	return &layout, nil
}

// validate 校验布局尺寸、行字符与物件位置
func (l *Layout) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", l.Width, l.Height)
	}
	if _, ok := types.ParseTileType(l.DefaultTile); !ok {
		return fmt.Errorf("unknown default_tile %q", l.DefaultTile)
	}
	if len(l.Rows) > l.Height {
		return fmt.Errorf("%d rows exceed height %d", len(l.Rows), l.Height)
	}
	for y, row := range l.Rows {
		runes := []rune(row)
		if len(runes) > l.Width {
			return fmt.Errorf("row %d has %d cells, width is %d", y, len(runes), l.Width)
		}
		for x, r := range runes {
			if r == runeDefault || r == runeVoid {
				continue
			}
			if _, ok := layoutRunes[r]; !ok {
				return fmt.Errorf("unknown tile rune %q at (%d,%d)", r, x, y)
			}
		}
	}
	for i, th := range l.Things {
		if _, ok := types.ParseThingKind(th.Kind); !ok {
			return fmt.Errorf("thing %d: unknown kind %q", i, th.Kind)
		}
		if th.X < 0 || th.X >= l.Width || th.Y < 0 || th.Y >= l.Height {
			return fmt.Errorf("thing %d at (%d,%d) is outside the map", i, th.X, th.Y)
		}
		switch l.runeAt(th.X, th.Y) {
		case runeVoid:
			return fmt.Errorf("thing %d at (%d,%d) sits on a void cell", i, th.X, th.Y)
		case '_':
			return fmt.Errorf("thing %d at (%d,%d) sits on an empty tile", i, th.X, th.Y)
		}
	}
	return nil
}

// runeAt 返回布局中指定位置的行字符，未写出的位置视为默认
func (l *Layout) runeAt(x, y int) rune {
	if y >= len(l.Rows) {
		return runeDefault
	}
	runes := []rune(l.Rows[y])
	if x >= len(runes) {
		return runeDefault
	}
	return runes[x]
}

// NewMapFromLayout 根据布局创建地图，并通过 things 放置预置物件
// things 为 nil 时忽略布局中的物件
func NewMapFromLayout(l *Layout, things *ThingManager) (*Map, error) {
	fill, _ := types.ParseTileType(l.DefaultTile)
	m, err := NewMap(l.Width, l.Height, fill)
	if err != nil {
		return nil, err
	}
	m.name = l.Name

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			coord := types.GridCoord{X: x, Y: y}
			r := l.runeAt(x, y)
			switch r {
			case runeDefault:
			case runeVoid:
				m.carve(coord)
			default:
				cell, _ := m.CellAt(coord)
				cell.Type = layoutRunes[r]
			}
		}
	}

	if things == nil {
		return m, nil
	}
	for _, th := range l.Things {
		kind, _ := types.ParseThingKind(th.Kind)
		cell, _ := m.CellAt(types.GridCoord{X: th.X, Y: th.Y})
		if _, err := things.CreateThing(cell, 1, 1, ThingBlocking, kind); err != nil {
			return nil, fmt.Errorf("place layout thing at (%d,%d): %w", th.X, th.Y, err)
		}
	}
	return m, nil
}
