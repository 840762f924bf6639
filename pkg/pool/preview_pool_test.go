package pool

import (
	"testing"

	"github.com/gonewx/tilebuild/pkg/components"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
)

func TestNewPreviewPoolPrewarm(t *testing.T) {
	tests := []struct {
		name    string
		prewarm int
		want    int
	}{
		{"指定数量", 8, 8},
		{"零使用默认值", 0, DefaultPrewarm},
		{"负数使用默认值", -3, DefaultPrewarm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			p := NewPreviewPool(em, tt.prewarm, nil)
			if p.Size() != tt.want || p.Idle() != tt.want || p.Active() != 0 {
				t.Errorf("Expected %d idle handles, got size=%d idle=%d active=%d",
					tt.want, p.Size(), p.Idle(), p.Active())
			}
			if em.EntityCount() != tt.want {
				t.Errorf("Expected %d entities, got %d", tt.want, em.EntityCount())
			}
		})
	}
}

// TestAcquireRelease 测试借出/归还与计数守恒
func TestAcquireRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	p := NewPreviewPool(em, 2, nil)

	a := p.Acquire()
	b := p.Acquire()
	c := p.Acquire() // 超出预热数量，扩容

	if p.Size() != 3 || p.Active() != 3 || p.Idle() != 0 {
		t.Errorf("Unexpected counts after acquire: size=%d active=%d idle=%d", p.Size(), p.Active(), p.Idle())
	}
	if !a.Active() || !b.Active() || !c.Active() {
		t.Error("Acquired handles should be active")
	}

	p.Release(b)
	p.Release(b) // 重复归还被忽略
	if p.Active() != 2 || p.Idle() != 1 {
		t.Errorf("Unexpected counts after release: active=%d idle=%d", p.Active(), p.Idle())
	}
	if p.Active()+p.Idle() != p.Size() {
		t.Error("Active + Idle must equal Size")
	}

	// 归还后再借出应复用同一句柄
	if again := p.Acquire(); again != b {
		t.Error("Expected released handle to be reused")
	}
}

func TestReleaseForeignHandle(t *testing.T) {
	p1 := NewPreviewPool(ecs.NewEntityManager(), 1, nil)
	p2 := NewPreviewPool(ecs.NewEntityManager(), 1, nil)

	h := p1.Acquire()
	p2.Release(h)
	p2.Release(nil)
	if !h.Active() || p1.Active() != 1 || p2.Idle() != 1 {
		t.Error("Releasing a foreign handle must be a no-op")
	}
}

// TestPlace 测试句柄命名、抬升与组件同步
func TestPlace(t *testing.T) {
	em := ecs.NewEntityManager()
	p := NewPreviewPool(em, 1, nil)
	h := p.Acquire()

	h.Place(types.GridCoord{X: 3, Y: 7}, 0.01)

	if h.Name != "PreviewTile[3,7]" {
		t.Errorf("Unexpected name %q", h.Name)
	}
	if h.Position != (types.WorldPos{X: 3, Y: 0.01, Z: 7}) {
		t.Errorf("Unexpected position %+v", h.Position)
	}

	comp, ok := ecs.GetComponent[*components.PreviewTileComponent](em, h.Entity)
	if !ok || !comp.Active || comp.Name != h.Name || comp.Coord != (types.GridCoord{X: 3, Y: 7}) {
		t.Errorf("PreviewTileComponent not synced: %+v", comp)
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, h.Entity)
	if !ok || pos.X != 3 || pos.Y != 0.01 || pos.Z != 7 {
		t.Errorf("PositionComponent not synced: %+v", pos)
	}

	p.Release(h)
	if h.Name != IdleName || h.Position != (types.WorldPos{}) {
		t.Errorf("Handle not reset on release: %+v", h)
	}
	if comp.Active || comp.Name != IdleName {
		t.Errorf("PreviewTileComponent not reset on release: %+v", comp)
	}
}
