package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/editor"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/utils"
	"go.uber.org/zap"
)

// 终端中每个格子占两列一行，地图从第 hudRows 行开始绘制
const (
	cellColumns = 2
	originX     = 1
	hudRows     = 3
)

var tileStyles = map[types.TileType]tcell.Style{
	types.TileNone:    tcell.StyleDefault.Background(tcell.ColorBlack),
	types.TileGeneric: tcell.StyleDefault.Background(tcell.ColorGray),
	types.TileGrass:   tcell.StyleDefault.Background(tcell.ColorGreen),
	types.TileDirt:    tcell.StyleDefault.Background(tcell.ColorOlive),
	types.TileStone:   tcell.StyleDefault.Background(tcell.ColorSilver),
	types.TileWater:   tcell.StyleDefault.Background(tcell.ColorNavy),
}

var modeRunes = map[rune]string{
	'1': "Tile",
	'2': "Thing",
	'3': "DeleteTile",
	'4': "DeleteThing",
}

// termUI tcell 宿主
type termUI struct {
	screen tcell.Screen
	editor *editor.Editor
	drag   *utils.DragTracker
	tone   *tone
	logger *zap.Logger

	lastCommit build.CommitResult
	cancelled  bool
	status     string
}

func newTermUI(screen tcell.Screen, ed *editor.Editor, t *tone) *termUI {
	return &termUI{
		screen: screen,
		editor: ed,
		drag:   utils.NewDragTracker(),
		tone:   t,
		logger: ed.Logger().Named("term"),
	}
}

// toWorld 把终端坐标转换为世界坐标
func toWorld(col, row int) types.WorldPos {
	return types.WorldPos{
		X: float64(col-originX) / cellColumns,
		Z: float64(row - hudRows),
	}
}

// handleEvent 处理一个事件，返回 false 表示退出
func (u *termUI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		u.drag.Step(ev.Buttons()&tcell.Button1 != 0, x, y)
		u.handleDrag()
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *termUI) handleDrag() {
	info := u.drag.Info()
	if u.cancelled {
		if !u.drag.Active() {
			u.cancelled = false
		}
		return
	}

	start := toWorld(info.StartX, info.StartY)
	current := toWorld(info.CurrentX, info.CurrentY)
	switch info.State {
	case utils.DragStateStarted, utils.DragStateDragging:
		u.editor.Resolver.UpdateSelection(start, current)
	case utils.DragStateEnded:
		u.editor.Resolver.UpdateSelection(start, current)
		u.lastCommit = u.editor.Dispatcher.Commit(current)
		u.tone.play(u.lastCommit.Aborted)
	}
}

func (u *termUI) handleKey(ev *tcell.EventKey) bool {
	d := u.editor.Dispatcher
	r := u.editor.Resolver

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlS:
		if err := u.editor.Save(); err != nil {
			u.logger.Error("failed to save session", zap.Error(err))
			u.status = "save failed"
		} else {
			u.status = "saved"
		}
	case tcell.KeyTab:
		d.SetTileType(d.TileType().Next())
	case tcell.KeyEscape:
		r.ClearPreview()
		u.cancelled = u.drag.Active()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '5':
			d.SetBuildMode(build.ModeInteract)
		case 'l', 'L':
			r.RestoreLastSelection()
		default:
			if name, ok := modeRunes[ev.Rune()]; ok {
				d.SetMode(name)
			}
		}
	}
	return true
}

func (u *termUI) draw() {
	s := u.screen
	s.Clear()

	d := u.editor.Dispatcher
	u.print(0, 0, tcell.StyleDefault.Bold(true), fmt.Sprintf("mode: %-11s tile: %-8s selected: %-4d %s",
		d.Mode(), d.TileType(), len(u.editor.Resolver.Selection()), u.status))
	if r := u.lastCommit; r.Aborted {
		u.print(0, 1, tcell.StyleDefault.Foreground(tcell.ColorRed), "last commit: aborted")
	} else if r.Applied > 0 || r.Skipped > 0 {
		u.print(0, 1, tcell.StyleDefault, fmt.Sprintf("last commit: %s applied %d skipped %d", r.Mode, r.Applied, r.Skipped))
	}
	u.print(0, 2, tcell.StyleDefault.Dim(true), "[1-4] mode [5] interact [Tab] tile [Esc] clear [l] last [^S] save [q] quit")

	for _, cell := range u.editor.Map.Cells() {
		style, ok := tileStyles[cell.Type]
		if !ok {
			style = tileStyles[types.TileGeneric]
		}
		glyph := ' '
		if cell.HasThing() {
			glyph = '█'
			style = style.Foreground(tcell.ColorMaroon)
		}
		u.setCell(cell.Coord, glyph, style)
	}

	for _, h := range u.editor.Resolver.PreviewHandles() {
		coord := types.ToGridCoord(h.Position)
		c, _ := u.editor.Map.CellAt(coord)
		glyph := '░'
		if c != nil && c.HasThing() {
			glyph = '▓'
		}
		u.setCell(coord, glyph, tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack))
	}

	s.Show()
}

func (u *termUI) setCell(c types.GridCoord, glyph rune, style tcell.Style) {
	col := originX + c.X*cellColumns
	row := hudRows + c.Y
	for i := 0; i < cellColumns; i++ {
		u.screen.SetContent(col+i, row, glyph, nil, style)
	}
}

func (u *termUI) print(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
