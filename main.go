package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/tilebuild/pkg/app"
	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/editor"
	"github.com/gonewx/tilebuild/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "data/config/editor.yaml", "编辑器配置文件")
	layoutPath = flag.String("layout", "", "覆盖配置中的地图布局（TOML）")
	verbose    = flag.Bool("verbose", false, "输出 debug 级别日志")
	fresh      = flag.Bool("fresh", false, "不恢复上次保存的会话")
)

func main() {
	flag.Parse()

	cfg, cfgErr := config.LoadEditorConfig(*configPath)
	if cfgErr != nil {
		cfg = config.DefaultEditorConfig()
	}
	if *layoutPath != "" {
		cfg.Layout = *layoutPath
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Warn("editor config unavailable, using defaults", zap.String("path", *configPath), zap.Error(cfgErr))
	}

	// gdata 不可用时以降级模式运行（会话只保存在内存中）
	gm, err := gdata.Open(gdata.Config{AppName: cfg.Save.AppName})
	if err != nil {
		logger.Warn("session storage unavailable", zap.Error(err))
		gm = nil
	}

	ed, err := editor.New(editor.OptionsFromConfig(cfg, gm, logger))
	if err != nil {
		logger.Fatal("failed to create editor", zap.Error(err))
	}

	game, err := app.NewApp(app.Config{Editor: cfg, RestoreSession: !*fresh}, ed)
	if err != nil {
		logger.Fatal("failed to create app", zap.Error(err))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop exited", zap.Error(err))
	}
}
