package world

import (
	"testing"

	"github.com/gonewx/tilebuild/pkg/types"
)

func TestNewMapInvalidSize(t *testing.T) {
	if _, err := NewMap(0, 5, types.TileGeneric); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := NewMap(5, -1, types.TileGeneric); err == nil {
		t.Error("Expected error for negative height")
	}
}

// TestCellAt 测试格子查询与边界
func TestCellAt(t *testing.T) {
	m, _, _ := newTestMap(t, 5, 4)

	tests := []struct {
		name   string
		coord  types.GridCoord
		exists bool
	}{
		{"左上角", types.GridCoord{X: 0, Y: 0}, true},
		{"右下角", types.GridCoord{X: 4, Y: 3}, true},
		{"负数列", types.GridCoord{X: -1, Y: 0}, false},
		{"负数行", types.GridCoord{X: 0, Y: -1}, false},
		{"列越界", types.GridCoord{X: 5, Y: 0}, false},
		{"行越界", types.GridCoord{X: 0, Y: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, ok := m.CellAt(tt.coord)
			if ok != tt.exists {
				t.Fatalf("CellAt(%v) exists = %v, want %v", tt.coord, ok, tt.exists)
			}
			if ok && cell.Coord != tt.coord {
				t.Errorf("Expected cell coord %v, got %v", tt.coord, cell.Coord)
			}
		})
	}
}

func TestCellAtWorld(t *testing.T) {
	m, _, _ := newTestMap(t, 5, 5)

	cell, ok := m.CellAtWorld(types.WorldPos{X: 2.7, Y: 10, Z: 3.2})
	if !ok {
		t.Fatal("Expected cell at world (2.7, 3.2)")
	}
	if cell.Coord != (types.GridCoord{X: 2, Y: 3}) {
		t.Errorf("Expected (2,3), got %v", cell.Coord)
	}

	if _, ok := m.CellAtWorld(types.WorldPos{X: -0.1, Z: 0}); ok {
		t.Error("Expected no cell at negative world X")
	}
}

// TestMeshRefresh 测试网格重建版本号与回调
func TestMeshRefresh(t *testing.T) {
	m, _, _ := newTestMap(t, 2, 2)

	var got []uint64
	m.OnMeshRefresh(func(v uint64) { got = append(got, v) })
	m.OnMeshRefresh(nil)

	cell, _ := m.CellAt(types.GridCoord{X: 1, Y: 1})
	m.SetTileType(cell, types.TileStone)
	if m.MeshVersion() != 0 {
		t.Error("SetTileType must not refresh the mesh by itself")
	}
	if cell.Type != types.TileStone {
		t.Errorf("Expected Stone, got %v", cell.Type)
	}

	m.RequestMeshRefresh()
	m.RequestMeshRefresh()
	if m.MeshVersion() != 2 {
		t.Errorf("Expected mesh version 2, got %d", m.MeshVersion())
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Unexpected refresh callbacks: %v", got)
	}

	// nil 格子应被忽略
	m.SetTileType(nil, types.TileNone)
}

// TestCellsScanOrder 测试 x 优先扫描顺序
func TestCellsScanOrder(t *testing.T) {
	m, _, _ := newTestMap(t, 2, 3)
	cells := m.Cells()
	want := []types.GridCoord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}
	if len(cells) != len(want) {
		t.Fatalf("Expected %d cells, got %d", len(want), len(cells))
	}
	for i, c := range cells {
		if c.Coord != want[i] {
			t.Errorf("cells[%d] = %v, want %v", i, c.Coord, want[i])
		}
	}
}
