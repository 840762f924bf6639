package world

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/components"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
	"go.uber.org/zap"
)

// ThingFlags 物件属性位
type ThingFlags uint8

const (
	// ThingBlocking 物件阻挡通行
	ThingBlocking ThingFlags = 1 << iota
)

// Thing 占用格子的物件（如墙）
// 物件由 ThingManager 创建，通过 Destroy 从格子上移除
type Thing struct {
	Kind   types.ThingKind
	Width  int
	Height int
	Flags  ThingFlags
	Coord  types.GridCoord
	Entity ecs.EntityID

	cell    *Cell
	manager *ThingManager
}

// Destroy 销毁物件：解除与格子的绑定并释放对应实体
// 重复调用是安全的
func (t *Thing) Destroy() {
	if t.manager == nil {
		return
	}
	if t.cell != nil && t.cell.Thing == t {
		t.cell.Thing = nil
	}
	t.manager.release(t)
	t.cell = nil
	t.manager = nil
}

// Alive 物件是否仍在地图上
func (t *Thing) Alive() bool {
	return t.manager != nil
}

// ThingManager 管理格子物件的创建与销毁
// 每个物件对应一个拥有 ThingComponent + PositionComponent 的实体
type ThingManager struct {
	entityManager *ecs.EntityManager
	logger        *zap.Logger
	things        map[ecs.EntityID]*Thing
}

// NewThingManager 创建物件管理器
func NewThingManager(em *ecs.EntityManager, logger *zap.Logger) *ThingManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThingManager{
		entityManager: em,
		logger:        logger.Named("things"),
		things:        make(map[ecs.EntityID]*Thing),
	}
}

// CreateThing 在格子上创建物件
//
// 参数:
//   - cell: 目标格子，不能为 nil 且必须空闲
//   - width, height: 物件尺寸（格子数）
//   - flags: 物件属性
//   - kind: 物件类型
//
// 返回:
//   - *Thing: 新创建的物件
//   - error: 格子无效或已被占用
func (m *ThingManager) CreateThing(cell *Cell, width, height int, flags ThingFlags, kind types.ThingKind) (*Thing, error) {
	if cell == nil {
		return nil, fmt.Errorf("cannot create %v on nil cell", kind)
	}
	if cell.Thing != nil {
		return nil, fmt.Errorf("cell %v is already occupied by %v", cell.Coord, cell.Thing.Kind)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid thing size %dx%d", width, height)
	}

	entity := m.entityManager.CreateEntity()
	m.entityManager.AddComponent(entity, &components.PositionComponent{
		X: float64(cell.Coord.X),
		Z: float64(cell.Coord.Y),
	})
	m.entityManager.AddComponent(entity, &components.ThingComponent{
		Kind:     kind,
		Coord:    cell.Coord,
		Width:    width,
		Height:   height,
		Blocking: flags&ThingBlocking != 0,
	})

	thing := &Thing{
		Kind:    kind,
		Width:   width,
		Height:  height,
		Flags:   flags,
		Coord:   cell.Coord,
		Entity:  entity,
		cell:    cell,
		manager: m,
	}
	cell.Thing = thing
	m.things[entity] = thing

	m.logger.Debug("thing created",
		zap.Stringer("kind", kind),
		zap.Stringer("coord", cell.Coord),
		zap.Uint64("entity", uint64(entity)))
	return thing, nil
}

// release 由 Thing.Destroy 调用
func (m *ThingManager) release(t *Thing) {
	delete(m.things, t.Entity)
	m.entityManager.DestroyEntity(t.Entity)
	m.logger.Debug("thing destroyed",
		zap.Stringer("kind", t.Kind),
		zap.Stringer("coord", t.Coord),
		zap.Uint64("entity", uint64(t.Entity)))
}

// Count 当前存活的物件数量
func (m *ThingManager) Count() int {
	return len(m.things)
}

// Things 返回当前存活的物件（顺序不保证）
func (m *ThingManager) Things() []*Thing {
	result := make([]*Thing, 0, len(m.things))
	for _, t := range m.things {
		result = append(result, t)
	}
	return result
}

// DestroyAll 销毁所有物件
func (m *ThingManager) DestroyAll() {
	for _, t := range m.Things() {
		t.Destroy()
	}
}
