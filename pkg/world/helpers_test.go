package world

import (
	"testing"

	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
)

// newTestMap 创建测试用的地图与物件管理器
func newTestMap(t *testing.T, width, height int) (*Map, *ThingManager, *ecs.EntityManager) {
	t.Helper()
	m, err := NewMap(width, height, types.TileGeneric)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	em := ecs.NewEntityManager()
	return m, NewThingManager(em, nil), em
}
