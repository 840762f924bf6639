// Package app 提供编辑器的 ebiten 宿主
//
// 该包把 editor.Editor 接入 ebiten 的 Update/Draw 循环：输入系统驱动选区与提交，
// 渲染系统绘制地图、物件、预览与状态栏。
package app

import (
	"image/color"

	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/editor"
	"github.com/gonewx/tilebuild/pkg/systems"
	"github.com/gonewx/tilebuild/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

var backgroundColor = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// Config 定义应用启动配置
type Config struct {
	Editor *config.EditorConfig
	// RestoreSession 启动时恢复上次保存的会话
	RestoreSession bool
}

// App 实现 ebiten.Game 接口
type App struct {
	editor *editor.Editor
	input  *systems.BuildInputSystem
	render *systems.GridRenderSystem
	audio  *AudioManager
	logger *zap.Logger

	width, height int
	autosave      bool
}

// NewApp 创建编辑器应用
func NewApp(cfg Config, ed *editor.Editor) (*App, error) {
	editorCfg := cfg.Editor
	if editorCfg == nil {
		editorCfg = config.DefaultEditorConfig()
	}
	logger := ed.Logger().Named("app")

	if cfg.RestoreSession {
		found, err := ed.RestoreSession()
		if err != nil {
			logger.Warn("failed to restore session", zap.Error(err))
		} else if found {
			logger.Info("session restored")
		}
	}

	layout := utils.NewGridLayout(editorCfg.Grid)
	if editorCfg.Grid.OriginX == 0 && editorCfg.Grid.OriginY == 0 {
		layout = layout.FitOrigin(editorCfg.Window.Width, editorCfg.Window.Height, ed.Map.Width(), ed.Map.Height())
	}

	// 每个进程只能创建一个音频上下文
	audioContext := audio.NewContext(audioSampleRate)

	return &App{
		editor:   ed,
		input:    systems.NewBuildInputSystem(ed.Resolver, ed.Dispatcher, layout, ed.Logger()),
		render:   systems.NewGridRenderSystem(ed.Entities, ed.Map, layout, editorCfg.Preview.Alpha),
		audio:    NewAudioManager(audioContext, editorCfg.Sound, ed.Logger()),
		logger:   logger,
		width:    editorCfg.Window.Width,
		height:   editorCfg.Window.Height,
		autosave: editorCfg.Save.Autosave,
	}, nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if a.autosave {
			a.save()
		}
		return ebiten.Termination
	}

	switch a.input.Update() {
	case systems.ActionSave:
		a.save()
	case systems.ActionCommitted:
		a.audio.PlayCommit(a.input.LastCommit().Aborted)
	}

	a.editor.Tick()
	return nil
}

func (a *App) save() {
	if err := a.editor.Save(); err != nil {
		a.logger.Error("failed to save session", zap.Error(err))
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.render.Draw(screen)
	a.render.DrawHUD(screen, a.editor.Dispatcher, a.editor.Resolver, a.input.LastCommit())
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Editor 返回编辑会话
func (a *App) Editor() *editor.Editor {
	return a.editor
}
