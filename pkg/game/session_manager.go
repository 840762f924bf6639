package game

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	sessionObject      = "session"
	sessionEditorProp  = "editor"
	sessionMapProperty = "map"
)

// SessionState 编辑器会话状态
type SessionState struct {
	Mode          string            `yaml:"mode"`
	TileType      string            `yaml:"tileType"`
	LastSelection []types.GridCoord `yaml:"lastSelection"`
}

// CaptureSession 从分发器和选区解析器读取当前会话状态
func CaptureSession(d *build.Dispatcher, r *build.SelectionResolver) *SessionState {
	return &SessionState{
		Mode:          d.Mode().String(),
		TileType:      d.TileType().String(),
		LastSelection: r.LastSelection(),
	}
}

// Apply 把会话状态写回分发器和选区解析器
// 无法识别的模式或地块类型保持当前值
func (s *SessionState) Apply(d *build.Dispatcher, r *build.SelectionResolver) {
	if m, ok := build.ParseBuildMode(s.Mode); ok {
		d.SetBuildMode(m)
	}
	if t, ok := types.ParseTileType(s.TileType); ok && !t.IsEmpty() {
		d.SetTileType(t)
	}
	r.SetLastSelection(s.LastSelection)
}

// SessionManager 会话存档管理器
//
// 编辑器状态与地图快照分别存为 gdata 对象 session 的 editor 和 map 属性（YAML）。
// gdataManager 为 nil 时进入降级模式，数据只保存在内存中。
type SessionManager struct {
	gdataManager *gdata.Manager
	logger       *zap.Logger

	// 降级模式下的内存存储
	memory map[string][]byte
}

// NewSessionManager 创建会话管理器
//
// 参数:
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - logger: 日志，可为 nil
func NewSessionManager(gdataManager *gdata.Manager, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		gdataManager: gdataManager,
		logger:       logger.Named("session"),
		memory:       make(map[string][]byte),
	}
}

// Persistent 是否能持久化到磁盘
func (sm *SessionManager) Persistent() bool {
	return sm.gdataManager != nil
}

// Save 保存编辑器状态
func (sm *SessionManager) Save(state *SessionState) error {
	if state == nil {
		return fmt.Errorf("session state is nil")
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := sm.store(sessionEditorProp, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	sm.logger.Info("session saved",
		zap.String("mode", state.Mode),
		zap.Int("lastSelection", len(state.LastSelection)))
	return nil
}

// Load 读取编辑器状态
//
// 返回:
//   - *SessionState: 读取到的状态，不存在时为 nil
//   - bool: 是否存在已保存的状态
//   - error: 读取或反序列化失败
func (sm *SessionManager) Load() (*SessionState, bool, error) {
	data, ok, err := sm.fetch(sessionEditorProp)
	if err != nil || !ok {
		return nil, false, err
	}

	var state SessionState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, true, nil
}

// SaveMap 保存地图快照
func (sm *SessionManager) SaveMap(snap world.Snapshot) error {
	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("failed to marshal map snapshot: %w", err)
	}
	if err := sm.store(sessionMapProperty, data); err != nil {
		return fmt.Errorf("failed to save map snapshot: %w", err)
	}
	sm.logger.Info("map saved",
		zap.String("name", snap.Name),
		zap.Int("things", len(snap.Things)))
	return nil
}

// LoadMap 读取地图快照，语义同 Load
func (sm *SessionManager) LoadMap() (*world.Snapshot, bool, error) {
	data, ok, err := sm.fetch(sessionMapProperty)
	if err != nil || !ok {
		return nil, false, err
	}

	var snap world.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal map snapshot: %w", err)
	}
	return &snap, true, nil
}

func (sm *SessionManager) store(prop string, data []byte) error {
	if sm.gdataManager == nil {
		sm.memory[prop] = data
		return nil
	}
	return sm.gdataManager.SaveObjectProp(sessionObject, prop, data)
}

func (sm *SessionManager) fetch(prop string) ([]byte, bool, error) {
	if sm.gdataManager == nil {
		data, ok := sm.memory[prop]
		return data, ok, nil
	}
	if !sm.gdataManager.ObjectPropExists(sessionObject, prop) {
		return nil, false, nil
	}
	data, err := sm.gdataManager.LoadObjectProp(sessionObject, prop)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s/%s: %w", sessionObject, prop, err)
	}
	return data, true, nil
}
