package editor

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
)

// getProjectRoot 通过源文件位置定位项目根目录
func getProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func TestNewBlankEditor(t *testing.T) {
	e, err := New(Options{DefaultTile: types.TileDirt, PreviewPool: 8})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.Map.Width() != BlankWidth || e.Map.Height() != BlankHeight {
		t.Errorf("Unexpected blank map %dx%d", e.Map.Width(), e.Map.Height())
	}
	if e.Dispatcher.TileType() != types.TileDirt {
		t.Errorf("Expected Dirt, got %v", e.Dispatcher.TileType())
	}
	if e.Previews.Size() != 8 {
		t.Errorf("Expected pool of 8, got %d", e.Previews.Size())
	}
}

func TestNewFromBundledConfig(t *testing.T) {
	root := getProjectRoot()
	cfg, err := config.LoadEditorConfig(filepath.Join(root, "data", "config", "editor.yaml"))
	if err != nil {
		t.Fatalf("LoadEditorConfig failed: %v", err)
	}
	opts := OptionsFromConfig(cfg, nil, nil)
	opts.LayoutPath = filepath.Join(root, cfg.Layout)

	e, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.Things.Count() == 0 {
		t.Error("Bundled layout places things")
	}
	if e.Previews.Size() != cfg.Preview.PoolSize {
		t.Errorf("Expected pool of %d, got %d", cfg.Preview.PoolSize, e.Previews.Size())
	}
	if e.Dispatcher.TileType() != cfg.DefaultTile() {
		t.Errorf("Expected %v, got %v", cfg.DefaultTile(), e.Dispatcher.TileType())
	}
}

func TestNewMissingLayout(t *testing.T) {
	if _, err := New(Options{LayoutPath: filepath.Join(t.TempDir(), "nope.toml")}); err == nil {
		t.Error("Expected error for missing layout")
	}
}

// TestSaveRestoreSession 测试降级模式下的会话保存与恢复
func TestSaveRestoreSession(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if found, err := e.RestoreSession(); err != nil || found {
		t.Fatalf("Expected no session, got %v %v", found, err)
	}

	e.Resolver.UpdateSelection(types.WorldPos{X: 0, Z: 0}, types.WorldPos{X: 2, Z: 0})
	e.Dispatcher.SetMode("Thing")
	e.Dispatcher.Commit(types.WorldPos{X: 0, Z: 0})
	e.Dispatcher.SetMode("DeleteTile")

	if err := e.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 在同一个会话存储上模拟重新打开
	e.Things.DestroyAll()
	e.Tick()
	e.Dispatcher.SetMode("Tile")
	e.Resolver.SetLastSelection(nil)

	found, err := e.RestoreSession()
	if err != nil || !found {
		t.Fatalf("RestoreSession failed: %v %v", found, err)
	}
	if e.Things.Count() != 3 {
		t.Errorf("Expected 3 things restored, got %d", e.Things.Count())
	}
	if e.Dispatcher.Mode() != build.ModeRemoveTile {
		t.Errorf("Expected DeleteTile restored, got %v", e.Dispatcher.Mode())
	}
	if len(e.Resolver.LastSelection()) != 3 {
		t.Errorf("Expected last selection of 3, got %d", len(e.Resolver.LastSelection()))
	}
}

func TestRestoreSessionMismatchedMapKeepsLayout(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	small, err := world.NewMap(2, 2, types.TileWater)
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	if err := e.Session.SaveMap(small.Snapshot()); err != nil {
		t.Fatalf("SaveMap failed: %v", err)
	}

	found, err := e.RestoreSession()
	if err != nil || !found {
		t.Fatalf("RestoreSession failed: %v %v", found, err)
	}
	cell, _ := e.Map.CellAt(types.GridCoord{})
	if cell.Type != types.TileGeneric {
		t.Errorf("Mismatched snapshot must not be applied, got %v", cell.Type)
	}
}

func TestTickRemovesDestroyedEntities(t *testing.T) {
	e, err := New(Options{PreviewPool: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.Resolver.UpdateSelection(types.WorldPos{}, types.WorldPos{X: 1})
	e.Dispatcher.SetMode("Thing")
	e.Dispatcher.Commit(types.WorldPos{})
	e.Dispatcher.SetMode("DeleteThing")
	e.Dispatcher.Commit(types.WorldPos{})

	if removed := e.Tick(); removed != 2 {
		t.Errorf("Expected 2 entities removed, got %d", removed)
	}
}
