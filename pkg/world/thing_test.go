package world

import (
	"testing"

	"github.com/gonewx/tilebuild/pkg/components"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
)

func TestCreateThing(t *testing.T) {
	m, things, em := newTestMap(t, 3, 3)
	cell, _ := m.CellAt(types.GridCoord{X: 1, Y: 2})

	thing, err := things.CreateThing(cell, 1, 1, ThingBlocking, types.ThingWall)
	if err != nil {
		t.Fatalf("CreateThing failed: %v", err)
	}
	if cell.Thing != thing || !cell.HasThing() {
		t.Error("Cell should reference the new thing")
	}
	if things.Count() != 1 {
		t.Errorf("Expected 1 thing, got %d", things.Count())
	}

	comp, ok := ecs.GetComponent[*components.ThingComponent](em, thing.Entity)
	if !ok {
		t.Fatal("Thing entity should carry ThingComponent")
	}
	if comp.Kind != types.ThingWall || comp.Coord != cell.Coord || !comp.Blocking {
		t.Errorf("Unexpected ThingComponent: %+v", comp)
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, thing.Entity)
	if !ok || pos.X != 1 || pos.Z != 2 {
		t.Errorf("Unexpected PositionComponent: %+v", pos)
	}
}

func TestCreateThingErrors(t *testing.T) {
	m, things, _ := newTestMap(t, 2, 2)
	cell, _ := m.CellAt(types.GridCoord{X: 0, Y: 0})

	if _, err := things.CreateThing(nil, 1, 1, 0, types.ThingWall); err == nil {
		t.Error("Expected error for nil cell")
	}
	if _, err := things.CreateThing(cell, 0, 1, 0, types.ThingWall); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := things.CreateThing(cell, 1, 1, 0, types.ThingWall); err != nil {
		t.Fatalf("CreateThing failed: %v", err)
	}
	if _, err := things.CreateThing(cell, 1, 1, 0, types.ThingWall); err == nil {
		t.Error("Expected error when cell is already occupied")
	}
	if things.Count() != 1 {
		t.Errorf("Expected 1 thing, got %d", things.Count())
	}
}

// TestThingDestroy 测试销毁物件释放格子与实体，且可重复调用
func TestThingDestroy(t *testing.T) {
	m, things, em := newTestMap(t, 2, 2)
	cell, _ := m.CellAt(types.GridCoord{X: 1, Y: 0})
	thing, err := things.CreateThing(cell, 1, 1, 0, types.ThingWall)
	if err != nil {
		t.Fatalf("CreateThing failed: %v", err)
	}

	thing.Destroy()
	if cell.Thing != nil {
		t.Error("Cell should be free after Destroy")
	}
	if thing.Alive() {
		t.Error("Thing should not be alive after Destroy")
	}
	if things.Count() != 0 {
		t.Errorf("Expected 0 things, got %d", things.Count())
	}

	thing.Destroy()
	em.RemoveMarkedEntities()
	if em.IsAlive(thing.Entity) {
		t.Error("Thing entity should be removed")
	}

	// 销毁后格子可以再次放置
	if _, err := things.CreateThing(cell, 1, 1, 0, types.ThingWall); err != nil {
		t.Errorf("Expected cell to accept a new thing: %v", err)
	}
}

func TestDestroyAll(t *testing.T) {
	m, things, _ := newTestMap(t, 3, 1)
	for _, cell := range m.Cells() {
		if _, err := things.CreateThing(cell, 1, 1, 0, types.ThingWall); err != nil {
			t.Fatalf("CreateThing failed: %v", err)
		}
	}
	things.DestroyAll()
	for _, cell := range m.Cells() {
		if cell.HasThing() {
			t.Errorf("Cell %v still has a thing", cell.Coord)
		}
	}
}
