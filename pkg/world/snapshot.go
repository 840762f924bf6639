package world

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/types"
)

// Snapshot 地图快照，用于会话存档
// Rows 使用与布局文件相同的行字符，每个格子都显式写出
type Snapshot struct {
	Name   string        `yaml:"name"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Rows   []string      `yaml:"rows"`
	Things []ThingRecord `yaml:"things"`
}

// ThingRecord 快照中的物件
type ThingRecord struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Kind     string `yaml:"kind"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Blocking bool   `yaml:"blocking"`
}

// tileRunes 地块类型到行字符的反向映射
var tileRunes = func() map[types.TileType]rune {
	result := make(map[types.TileType]rune, len(layoutRunes))
	for r, t := range layoutRunes {
		result[t] = r
	}
	return result
}()

// Snapshot 生成当前地图的快照
func (m *Map) Snapshot() Snapshot {
	snap := Snapshot{
		Name:   m.name,
		Width:  m.width,
		Height: m.height,
		Rows:   make([]string, m.height),
	}
	for y := 0; y < m.height; y++ {
		row := make([]rune, m.width)
		for x := 0; x < m.width; x++ {
			cell, ok := m.CellAt(types.GridCoord{X: x, Y: y})
			if !ok {
				row[x] = runeVoid
				continue
			}
			row[x] = tileRunes[cell.Type]
			if cell.Thing != nil {
				snap.Things = append(snap.Things, ThingRecord{
					X:        x,
					Y:        y,
					Kind:     cell.Thing.Kind.String(),
					Width:    cell.Thing.Width,
					Height:   cell.Thing.Height,
					Blocking: cell.Thing.Flags&ThingBlocking != 0,
				})
			}
		}
		snap.Rows[y] = string(row)
	}
	return snap
}

// Restore 将快照应用到地图上
// 快照的尺寸、空洞分布与物件记录全部校验通过后才修改地图，校验失败时地图不变；
// 现有物件全部销毁后按快照重建，完成后触发一次网格重建
func (m *Map) Restore(snap Snapshot, things *ThingManager) error {
	if snap.Width != m.width || snap.Height != m.height {
		return fmt.Errorf("snapshot size %dx%d does not match map %dx%d",
			snap.Width, snap.Height, m.width, m.height)
	}
	if len(snap.Rows) != m.height {
		return fmt.Errorf("snapshot has %d rows, expected %d", len(snap.Rows), m.height)
	}

	// 先完整校验，避免部分应用
	parsed := make([][]rune, m.height)
	for y, row := range snap.Rows {
		runes := []rune(row)
		if len(runes) != m.width {
			return fmt.Errorf("snapshot row %d has %d cells, expected %d", y, len(runes), m.width)
		}
		for x, r := range runes {
			_, exists := m.CellAt(types.GridCoord{X: x, Y: y})
			if (r == runeVoid) == exists {
				return fmt.Errorf("snapshot void layout differs at (%d,%d)", x, y)
			}
			if r != runeVoid {
				if _, ok := layoutRunes[r]; !ok {
					return fmt.Errorf("unknown tile rune %q at (%d,%d)", r, x, y)
				}
			}
		}
		parsed[y] = runes
	}

	records, err := m.checkThingRecords(snap.Things)
	if err != nil {
		return err
	}

	for _, cell := range m.Cells() {
		if cell.Thing != nil {
			cell.Thing.Destroy()
		}
		cell.Type = layoutRunes[parsed[cell.Coord.Y][cell.Coord.X]]
	}

	if things != nil {
		for _, rec := range records {
			if _, err := things.CreateThing(rec.cell, rec.width, rec.height, rec.flags, rec.kind); err != nil {
				return fmt.Errorf("restore thing: %w", err)
			}
		}
	}

	m.RequestMeshRefresh()
	return nil
}

// thingRestore 已校验的物件记录
type thingRestore struct {
	cell          *Cell
	kind          types.ThingKind
	width, height int
	flags         ThingFlags
}

// checkThingRecords 在修改地图之前校验快照中的物件记录
// 种类、所在格子、尺寸以及坐标重复任一不合法都会拒绝整个快照
func (m *Map) checkThingRecords(recs []ThingRecord) ([]thingRestore, error) {
	result := make([]thingRestore, 0, len(recs))
	seen := make(map[types.GridCoord]struct{}, len(recs))
	for _, rec := range recs {
		coord := types.GridCoord{X: rec.X, Y: rec.Y}
		kind, ok := types.ParseThingKind(rec.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown thing kind %q at %v", rec.Kind, coord)
		}
		cell, ok := m.CellAt(coord)
		if !ok {
			return nil, fmt.Errorf("snapshot thing at %v has no cell", coord)
		}
		if rec.Width <= 0 || rec.Height <= 0 {
			return nil, fmt.Errorf("snapshot thing at %v has invalid size %dx%d", coord, rec.Width, rec.Height)
		}
		if _, dup := seen[coord]; dup {
			return nil, fmt.Errorf("snapshot has more than one thing at %v", coord)
		}
		seen[coord] = struct{}{}

		var flags ThingFlags
		if rec.Blocking {
			flags |= ThingBlocking
		}
		result = append(result, thingRestore{cell: cell, kind: kind, width: rec.Width, height: rec.Height, flags: flags})
	}
	return result, nil
}
