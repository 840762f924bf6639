package systems

import (
	"fmt"
	"image/color"

	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/components"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/utils"
	"github.com/gonewx/tilebuild/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 地块颜色
var tileColors = map[types.TileType]color.RGBA{
	types.TileNone:    {R: 40, G: 40, B: 46, A: 255},
	types.TileGeneric: {R: 150, G: 150, B: 150, A: 255},
	types.TileGrass:   {R: 96, G: 168, B: 72, A: 255},
	types.TileDirt:    {R: 140, G: 100, B: 60, A: 255},
	types.TileStone:   {R: 120, G: 124, B: 136, A: 255},
	types.TileWater:   {R: 64, G: 120, B: 200, A: 255},
}

var (
	gridLineColor = color.RGBA{R: 20, G: 20, B: 24, A: 255}
	wallColor     = color.RGBA{R: 70, G: 52, B: 40, A: 255}
	previewColor  = color.RGBA{R: 255, G: 230, B: 90, A: 255}
)

// TileColor 返回地块的绘制颜色
func TileColor(t types.TileType) color.RGBA {
	if c, ok := tileColors[t]; ok {
		return c
	}
	return tileColors[types.TileGeneric]
}

// PreviewColor 返回按 alpha 缩放后的预览颜色（预乘 alpha）
func PreviewColor(alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha * 255)
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(previewColor.R), G: scale(previewColor.G), B: scale(previewColor.B), A: a}
}

// GridRenderSystem 绘制地图、物件、选区预览和状态栏
//
// 物件与预览都从 ECS 中查询：
//   - ThingComponent + PositionComponent → 物件
//   - PreviewTileComponent(Active) + PositionComponent → 预览图块
type GridRenderSystem struct {
	entityManager *ecs.EntityManager
	grid          *world.Map
	layout        utils.GridLayout
	previewAlpha  float64
}

// NewGridRenderSystem 创建渲染系统
func NewGridRenderSystem(em *ecs.EntityManager, grid *world.Map, layout utils.GridLayout, previewAlpha float64) *GridRenderSystem {
	return &GridRenderSystem{
		entityManager: em,
		grid:          grid,
		layout:        layout,
		previewAlpha:  previewAlpha,
	}
}

// SetGridLayout 更新网格摆放
func (s *GridRenderSystem) SetGridLayout(g utils.GridLayout) {
	s.layout = g
}

// Draw 绘制地图、物件与预览
func (s *GridRenderSystem) Draw(screen *ebiten.Image) {
	size := float32(s.layout.CellSize)

	for _, cell := range s.grid.Cells() {
		x, y := s.layout.GridToScreen(cell.Coord)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, TileColor(cell.Type), false)
		vector.StrokeRect(screen, float32(x), float32(y), size, size, 1, gridLineColor, false)
	}

	inset := size / 6
	for _, id := range ecs.GetEntitiesWith2[*components.ThingComponent, *components.PositionComponent](s.entityManager) {
		thing, _ := ecs.GetComponent[*components.ThingComponent](s.entityManager, id)
		x, y := s.layout.GridToScreen(thing.Coord)
		w := float32(thing.Width)*size - 2*inset
		h := float32(thing.Height)*size - 2*inset
		vector.DrawFilledRect(screen, float32(x)+inset, float32(y)+inset, w, h, wallColor, false)
	}

	fill := PreviewColor(s.previewAlpha)
	for _, id := range ecs.GetEntitiesWith2[*components.PreviewTileComponent, *components.PositionComponent](s.entityManager) {
		preview, _ := ecs.GetComponent[*components.PreviewTileComponent](s.entityManager, id)
		if !preview.Active {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		x, y := s.layout.WorldToScreen(types.WorldPos{X: pos.X, Z: pos.Z})
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), size, size, 2, previewColor, false)
	}
}

// DrawHUD 绘制状态栏
func (s *GridRenderSystem) DrawHUD(screen *ebiten.Image, d *build.Dispatcher, r *build.SelectionResolver, last build.CommitResult) {
	ebitenutil.DebugPrint(screen, HUDText(d, r, last))
}

// HUDText 状态栏文本
func HUDText(d *build.Dispatcher, r *build.SelectionResolver, last build.CommitResult) string {
	text := fmt.Sprintf("mode: %s  tile: %s  selected: %d  last: %d\n",
		d.Mode(), d.TileType(), len(r.Selection()), len(r.LastSelection()))
	if last.Aborted {
		text += "last commit: aborted\n"
	} else if last.Applied > 0 || last.Skipped > 0 {
		text += fmt.Sprintf("last commit: %s applied %d skipped %d\n", last.Mode, last.Applied, last.Skipped)
	}
	text += "[1-4] mode  [5] interact  [Tab] tile  [Esc] clear  [L] last  [Ctrl+S] save"
	return text
}
