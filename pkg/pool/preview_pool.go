// Package pool 提供选区预览图块的对象池
//
// 每个预览图块都是一个 ECS 实体（PositionComponent + PreviewTileComponent），
// 启动时预先创建一批空闲实体，选区每帧重建时借出/归还，不再反复创建销毁。
package pool

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/components"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
	"go.uber.org/zap"
)

// DefaultPrewarm 默认预热数量
const DefaultPrewarm = 200

// IdleName 空闲预览图块的名称
const IdleName = "PreviewTile"

// PreviewHandle 预览图块句柄
// Name 与 Position 由借用方修改，归还时由池重置
type PreviewHandle struct {
	Name     string
	Position types.WorldPos
	Entity   ecs.EntityID

	active bool
	owner  *PreviewPool
}

// Active 句柄是否正被借用
func (h *PreviewHandle) Active() bool {
	return h.active
}

// Place 将句柄绑定到格子：命名为 PreviewTile[x,y]，放在格子原点上方 lift 处
func (h *PreviewHandle) Place(coord types.GridCoord, lift float64) {
	h.Name = fmt.Sprintf("%s[%d,%d]", IdleName, coord.X, coord.Y)
	h.Position = coord.ToWorldPos(lift)
	if h.owner != nil {
		h.owner.sync(h, coord)
	}
}

// PreviewPool 预览图块对象池
type PreviewPool struct {
	entityManager *ecs.EntityManager
	logger        *zap.Logger

	idle   []*PreviewHandle
	active map[*PreviewHandle]struct{}
	size   int
}

// NewPreviewPool 创建预览池并预热 prewarm 个空闲句柄
// prewarm <= 0 时使用 DefaultPrewarm
func NewPreviewPool(em *ecs.EntityManager, prewarm int, logger *zap.Logger) *PreviewPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prewarm <= 0 {
		prewarm = DefaultPrewarm
	}

	p := &PreviewPool{
		entityManager: em,
		logger:        logger.Named("preview_pool"),
		idle:          make([]*PreviewHandle, 0, prewarm),
		active:        make(map[*PreviewHandle]struct{}),
	}
	for i := 0; i < prewarm; i++ {
		p.idle = append(p.idle, p.newHandle())
	}
	p.logger.Debug("preview pool prewarmed", zap.Int("size", prewarm))
	return p
}

// newHandle 创建一个空闲句柄及其实体
func (p *PreviewPool) newHandle() *PreviewHandle {
	entity := p.entityManager.CreateEntity()
	p.entityManager.AddComponent(entity, &components.PositionComponent{})
	p.entityManager.AddComponent(entity, &components.PreviewTileComponent{Name: IdleName})
	p.size++
	return &PreviewHandle{
		Name:   IdleName,
		Entity: entity,
		owner:  p,
	}
}

// Acquire 借出一个句柄；池为空时扩容一个
func (p *PreviewPool) Acquire() *PreviewHandle {
	var h *PreviewHandle
	if n := len(p.idle); n > 0 {
		h = p.idle[n-1]
		p.idle = p.idle[:n-1]
	} else {
		h = p.newHandle()
		p.logger.Debug("preview pool grown", zap.Int("size", p.size))
	}

	h.active = true
	p.active[h] = struct{}{}
	if comp, ok := ecs.GetComponent[*components.PreviewTileComponent](p.entityManager, h.Entity); ok {
		comp.Active = true
	}
	return h
}

// Release 归还句柄
// 不属于本池或已空闲的句柄会被忽略
func (p *PreviewPool) Release(h *PreviewHandle) {
	if h == nil || h.owner != p {
		return
	}
	if _, ok := p.active[h]; !ok {
		return
	}
	delete(p.active, h)

	h.active = false
	h.Name = IdleName
	h.Position = types.WorldPos{}
	if comp, ok := ecs.GetComponent[*components.PreviewTileComponent](p.entityManager, h.Entity); ok {
		comp.Active = false
		comp.Name = IdleName
		comp.Coord = types.GridCoord{}
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, h.Entity); ok {
		*pos = components.PositionComponent{}
	}
	p.idle = append(p.idle, h)
}

// sync 将句柄状态写回实体组件，供渲染系统读取
func (p *PreviewPool) sync(h *PreviewHandle, coord types.GridCoord) {
	if comp, ok := ecs.GetComponent[*components.PreviewTileComponent](p.entityManager, h.Entity); ok {
		comp.Name = h.Name
		comp.Coord = coord
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](p.entityManager, h.Entity); ok {
		pos.X, pos.Y, pos.Z = h.Position.X, h.Position.Y, h.Position.Z
	}
}

// Active 借出中的句柄数量
func (p *PreviewPool) Active() int { return len(p.active) }

// Idle 空闲句柄数量
func (p *PreviewPool) Idle() int { return len(p.idle) }

// Size 池中句柄总数
func (p *PreviewPool) Size() int { return p.size }
