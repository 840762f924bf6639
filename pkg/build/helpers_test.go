package build

import (
	"sort"
	"testing"

	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/pool"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testFixture 组装真实的地图、物件管理器与预览池
type testFixture struct {
	grid       *world.Map
	things     *world.ThingManager
	em         *ecs.EntityManager
	previews   *pool.PreviewPool
	resolver   *SelectionResolver
	dispatcher *Dispatcher
	logs       *observer.ObservedLogs
	refreshes  int
}

// newFixture 创建 width x height 的全 Generic 地图
func newFixture(t *testing.T, width, height int) *testFixture {
	t.Helper()
	m, err := world.NewMap(width, height, types.TileGeneric)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	return newFixtureWithMap(t, m, nil, nil)
}

// newLayoutFixture 根据 TOML 布局创建地图（可包含空洞）
func newLayoutFixture(t *testing.T, content string) *testFixture {
	t.Helper()
	layout, err := world.ParseLayout([]byte(content))
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	em := ecs.NewEntityManager()
	things := world.NewThingManager(em, nil)
	m, err := world.NewMapFromLayout(layout, things)
	if err != nil {
		t.Fatalf("NewMapFromLayout failed: %v", err)
	}
	return newFixtureWithMap(t, m, em, things)
}

func newFixtureWithMap(t *testing.T, m *world.Map, em *ecs.EntityManager, things *world.ThingManager) *testFixture {
	t.Helper()
	if em == nil {
		em = ecs.NewEntityManager()
	}
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	if things == nil {
		things = world.NewThingManager(em, logger)
	}

	f := &testFixture{
		grid:     m,
		things:   things,
		em:       em,
		previews: pool.NewPreviewPool(em, 16, logger),
		logs:     logs,
	}
	m.OnMeshRefresh(func(uint64) { f.refreshes++ })
	f.resolver = NewSelectionResolver(m, f.previews, DefaultPreviewLift, logger)
	f.dispatcher = NewDispatcher(m, f.things, f.resolver, logger)
	return f
}

// at 构造平面坐标为 (x, z) 的世界坐标
func at(x, z float64) types.WorldPos {
	return types.WorldPos{X: x, Z: z}
}

// cell 获取格子，不存在时测试失败
func (f *testFixture) cell(t *testing.T, x, y int) *world.Cell {
	t.Helper()
	c, ok := f.grid.CellAt(types.GridCoord{X: x, Y: y})
	if !ok {
		t.Fatalf("Expected cell at (%d,%d)", x, y)
	}
	return c
}

// sortedCoords 返回排序后的坐标，用于与顺序无关的比较
func sortedCoords(coords []types.GridCoord) []types.GridCoord {
	result := append([]types.GridCoord(nil), coords...)
	sort.Slice(result, func(i, j int) bool {
		if result[i].X != result[j].X {
			return result[i].X < result[j].X
		}
		return result[i].Y < result[j].Y
	})
	return result
}

// sameCoordSet 判断两个坐标集合是否相等（顺序无关）
func sameCoordSet(a, b []types.GridCoord) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := sortedCoords(a), sortedCoords(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// rect 返回闭区间矩形内的所有坐标
func rect(x0, y0, x1, y1 int) []types.GridCoord {
	var result []types.GridCoord
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			result = append(result, types.GridCoord{X: x, Y: y})
		}
	}
	return result
}
