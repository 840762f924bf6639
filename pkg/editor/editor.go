// Package editor 组装地图、物件、预览池、选区解析器与分发器，供各宿主程序共用
package editor

import (
	"fmt"

	"github.com/gonewx/tilebuild/pkg/build"
	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/ecs"
	"github.com/gonewx/tilebuild/pkg/game"
	"github.com/gonewx/tilebuild/pkg/pool"
	"github.com/gonewx/tilebuild/pkg/types"
	"github.com/gonewx/tilebuild/pkg/world"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// 未指定布局时使用的空白地图尺寸
const (
	BlankWidth  = 16
	BlankHeight = 12
)

// Options 编辑器组装参数
type Options struct {
	// LayoutPath TOML 布局文件，为空时创建空白地图
	LayoutPath string
	// Layout 已解析的布局，优先于 LayoutPath
	Layout *world.Layout

	DefaultTile types.TileType
	PreviewPool int
	PreviewLift float64

	// Gdata 会话存储，可为 nil（降级模式）
	Gdata  *gdata.Manager
	Logger *zap.Logger
}

// OptionsFromConfig 根据编辑器配置生成组装参数
func OptionsFromConfig(cfg *config.EditorConfig, gm *gdata.Manager, logger *zap.Logger) Options {
	return Options{
		LayoutPath:  cfg.Layout,
		DefaultTile: cfg.DefaultTile(),
		PreviewPool: cfg.Preview.PoolSize,
		PreviewLift: cfg.Preview.Lift,
		Gdata:       gm,
		Logger:      logger,
	}
}

// Editor 一个完整的编辑会话
type Editor struct {
	Entities   *ecs.EntityManager
	Map        *world.Map
	Things     *world.ThingManager
	Previews   *pool.PreviewPool
	Resolver   *build.SelectionResolver
	Dispatcher *build.Dispatcher
	Session    *game.SessionManager

	logger *zap.Logger
}

// New 组装编辑器
//
// 返回:
//   - *Editor: 组装完成的编辑器
//   - error: 布局加载或地图创建失败
func New(opts Options) (*Editor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	em := ecs.NewEntityManager()
	things := world.NewThingManager(em, logger)

	m, err := buildMap(opts, things)
	if err != nil {
		return nil, err
	}

	lift := opts.PreviewLift
	if lift <= 0 {
		lift = build.DefaultPreviewLift
	}
	previews := pool.NewPreviewPool(em, opts.PreviewPool, logger)
	resolver := build.NewSelectionResolver(m, previews, lift, logger)
	dispatcher := build.NewDispatcher(m, things, resolver, logger)
	if !opts.DefaultTile.IsEmpty() {
		dispatcher.SetTileType(opts.DefaultTile)
	}

	logger.Info("editor ready",
		zap.String("map", m.Name()),
		zap.Int("width", m.Width()),
		zap.Int("height", m.Height()),
		zap.Int("things", things.Count()),
		zap.Int("previewPool", previews.Size()))

	return &Editor{
		Entities:   em,
		Map:        m,
		Things:     things,
		Previews:   previews,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Session:    game.NewSessionManager(opts.Gdata, logger),
		logger:     logger,
	}, nil
}

func buildMap(opts Options, things *world.ThingManager) (*world.Map, error) {
	layout := opts.Layout
	if layout == nil && opts.LayoutPath != "" {
		l, err := world.LoadLayout(opts.LayoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load layout: %w", err)
		}
		layout = l
	}
	if layout == nil {
		return world.NewMap(BlankWidth, BlankHeight, types.TileGeneric)
	}
	m, err := world.NewMapFromLayout(layout, things)
	if err != nil {
		return nil, fmt.Errorf("failed to build map: %w", err)
	}
	return m, nil
}

// Save 保存地图快照与编辑器状态
func (e *Editor) Save() error {
	if err := e.Session.SaveMap(e.Map.Snapshot()); err != nil {
		return err
	}
	return e.Session.Save(game.CaptureSession(e.Dispatcher, e.Resolver))
}

// RestoreSession 恢复已保存的会话
//
// 地图快照与当前地图尺寸或空洞分布不一致时跳过地图，仅恢复编辑器状态。
//
// 返回:
//   - bool: 是否找到已保存的会话
//   - error: 读取失败
func (e *Editor) RestoreSession() (bool, error) {
	snap, hasMap, err := e.Session.LoadMap()
	if err != nil {
		return false, err
	}
	if hasMap {
		if err := e.Map.Restore(*snap, e.Things); err != nil {
			e.logger.Warn("saved map does not fit, keeping layout", zap.Error(err))
		}
	}

	state, hasState, err := e.Session.Load()
	if err != nil {
		return hasMap, err
	}
	if hasState {
		state.Apply(e.Dispatcher, e.Resolver)
	}
	return hasMap || hasState, nil
}

// Tick 帧末清理，回收已销毁的实体
func (e *Editor) Tick() int {
	return e.Entities.RemoveMarkedEntities()
}

// Logger 编辑器日志
func (e *Editor) Logger() *zap.Logger {
	return e.logger
}
