package systems

import (
	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// InputAction 需要宿主程序处理的输入结果
type InputAction int

const (
	ActionNone InputAction = iota
	// ActionSave 保存会话（Ctrl+S）
	ActionSave
	// ActionCommitted 本帧完成了一次提交
	ActionCommitted
)

// modeKeys 数字键对应的建造指令名
var modeKeys = map[ebiten.Key]string{
	ebiten.Key1: "Tile",
	ebiten.Key2: "Thing",
	ebiten.Key3: "DeleteTile",
	ebiten.Key4: "DeleteThing",
}

// BuildInputSystem 把指针拖拽和按键转换为选区与建造指令
//
// 拖拽期间每帧用起点和当前指针位置重算选区；释放时以释放位置为锚点提交。
type BuildInputSystem struct {
	resolver   *build.SelectionResolver
	dispatcher *build.Dispatcher
	grid       utils.GridLayout
	drag       *utils.DragTracker
	logger     *zap.Logger

	lastCommit build.CommitResult

	// cancelled 当前拖拽已被 Esc 取消，释放前不再更新选区
	cancelled bool
}

// NewBuildInputSystem 创建建造输入系统
func NewBuildInputSystem(resolver *build.SelectionResolver, dispatcher *build.Dispatcher, grid utils.GridLayout, logger *zap.Logger) *BuildInputSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildInputSystem{
		resolver:   resolver,
		dispatcher: dispatcher,
		grid:       grid,
		drag:       utils.NewDragTracker(),
		logger:     logger.Named("input"),
	}
}

// SetGridLayout 更新网格摆放（窗口尺寸变化时）
func (s *BuildInputSystem) SetGridLayout(g utils.GridLayout) {
	s.grid = g
}

// LastCommit 最近一次提交的结果
func (s *BuildInputSystem) LastCommit() build.CommitResult {
	return s.lastCommit
}

// Update 读取本帧输入
//
// 返回:
//   - InputAction: 需要宿主处理的动作
func (s *BuildInputSystem) Update() InputAction {
	action := ActionNone
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
		if a := s.HandleKey(key, ctrl); a != ActionNone {
			action = a
		}
	}

	s.pollPointer()
	if a := s.HandleDrag(s.drag.Info()); a != ActionNone {
		action = a
	}
	return action
}

// pollPointer 读取本帧的触摸或鼠标状态并推进拖拽
// 触摸优先；已在跟踪的触摸会一直跟踪到它释放
func (s *BuildInputSystem) pollPointer() {
	info := s.drag.Info()
	if info.IsTouchInput && s.drag.Active() {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if int(id) == info.TouchID {
				x, y := ebiten.TouchPosition(id)
				s.drag.Step(true, x, y)
				return
			}
		}
		// 触摸已释放，沿用最后位置
		s.drag.Step(false, info.CurrentX, info.CurrentY)
		return
	}

	if !s.drag.Active() {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			x, y := ebiten.TouchPosition(ids[0])
			s.drag.Step(true, x, y)
			s.drag.BindTouch(int(ids[0]))
			return
		}
	}

	x, y := ebiten.CursorPosition()
	s.drag.Step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y)
}

// HandleDrag 根据拖拽状态更新选区或提交
func (s *BuildInputSystem) HandleDrag(info utils.DragInfo) InputAction {
	if s.cancelled {
		if info.State == utils.DragStateEnded || info.State == utils.DragStateNone {
			s.cancelled = false
		}
		return ActionNone
	}

	switch info.State {
	case utils.DragStateStarted, utils.DragStateDragging:
		start := s.grid.ScreenToWorld(info.StartX, info.StartY)
		current := s.grid.ScreenToWorld(info.CurrentX, info.CurrentY)
		s.resolver.UpdateSelection(start, current)

	case utils.DragStateEnded:
		start := s.grid.ScreenToWorld(info.StartX, info.StartY)
		anchor := s.grid.ScreenToWorld(info.CurrentX, info.CurrentY)
		s.resolver.UpdateSelection(start, anchor)
		s.lastCommit = s.dispatcher.Commit(anchor)
		return ActionCommitted
	}
	return ActionNone
}

// HandleKey 处理一次按键
//
// 1-4 切换建造模式，5 切换到交互模式，Tab 轮换地块类型，
// Esc 清除预览，L 恢复上一次选区，Ctrl+S 保存。
func (s *BuildInputSystem) HandleKey(key ebiten.Key, ctrl bool) InputAction {
	if name, ok := modeKeys[key]; ok {
		s.dispatcher.SetMode(name)
		s.logger.Debug("mode changed", zap.Stringer("mode", s.dispatcher.Mode()))
		return ActionNone
	}

	switch key {
	case ebiten.Key5:
		s.dispatcher.SetBuildMode(build.ModeInteract)
	case ebiten.KeyTab:
		s.dispatcher.SetTileType(s.dispatcher.TileType().Next())
		s.logger.Debug("tile type changed", zap.Stringer("tile", s.dispatcher.TileType()))
	case ebiten.KeyEscape:
		s.resolver.ClearPreview()
		s.cancelled = s.drag.Active()
	case ebiten.KeyL:
		s.resolver.RestoreLastSelection()
	case ebiten.KeyS:
		if ctrl {
			return ActionSave
		}
	}
	return ActionNone
}
