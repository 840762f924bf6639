// Package utils 提供屏幕与网格之间的坐标换算以及指针拖拽跟踪
//
// 本包不依赖具体的图形或终端库，ebiten 与 tcell 宿主共用。
package utils

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// String 返回状态名
func (s DragState) String() string {
	switch s {
	case DragStateNone:
		return "None"
	case DragStateStarted:
		return "Started"
	case DragStateDragging:
		return "Dragging"
	case DragStateEnded:
		return "Ended"
	}
	return "Unknown"
}

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置；Ended 时为释放位置
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID int
	// IsTouchInput 是否为触摸输入
	IsTouchInput bool
}

// DragTracker 跟踪一次按下-移动-释放的拖拽
// 宿主每帧读取一次指针状态并调用 Step
type DragTracker struct {
	info DragInfo
}

// NewDragTracker 创建拖拽跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{info: DragInfo{TouchID: -1}}
}

// Step 根据本帧指针是否按下及其位置推进状态机
//
// None --按下--> Started --按住--> Dragging --释放--> Ended --> None
// Started 帧内释放直接进入 Ended（单击）。
func (d *DragTracker) Step(pressed bool, x, y int) {
	switch d.info.State {
	case DragStateNone, DragStateEnded:
		if pressed {
			d.info = DragInfo{
				State:    DragStateStarted,
				StartX:   x,
				StartY:   y,
				CurrentX: x,
				CurrentY: y,
				TouchID:  -1,
			}
			return
		}
		d.Reset()

	case DragStateStarted, DragStateDragging:
		d.info.CurrentX, d.info.CurrentY = x, y
		if pressed {
			d.info.State = DragStateDragging
		} else {
			d.info.State = DragStateEnded
		}
	}
}

// BindTouch 把刚开始的拖拽标记为触摸输入
func (d *DragTracker) BindTouch(id int) {
	if d.info.State == DragStateStarted {
		d.info.TouchID = id
		d.info.IsTouchInput = true
	}
}

// Reset 取消当前拖拽
func (d *DragTracker) Reset() {
	d.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// State 当前拖拽状态
func (d *DragTracker) State() DragState {
	return d.info.State
}

// Info 完整拖拽信息
func (d *DragTracker) Info() DragInfo {
	return d.info
}

// Active 是否处于按下状态（Started 或 Dragging）
func (d *DragTracker) Active() bool {
	return d.info.State == DragStateStarted || d.info.State == DragStateDragging
}

// JustEnded 是否本帧刚释放
func (d *DragTracker) JustEnded() bool {
	return d.info.State == DragStateEnded
}

// Distance 从起点到当前位置的位移
func (d *DragTracker) Distance() (dx, dy int) {
	return d.info.CurrentX - d.info.StartX, d.info.CurrentY - d.info.StartY
}
