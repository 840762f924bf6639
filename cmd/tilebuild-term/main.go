// tilebuild-term 在终端里编辑地图：鼠标拖拽选区，松开提交，提交时播放提示音
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gonewx/tilebuild/pkg/editor"
	"github.com/gonewx/tilebuild/pkg/logging"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "data/config/editor.yaml", "编辑器配置文件")
	layoutPath = flag.String("layout", "", "覆盖配置中的地图布局（TOML）")
	logPath    = flag.String("log", "tilebuild-term.log", "日志文件（终端被界面占用）")
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

	zapCfg := logging.NewConfig(cfg.Logging)
	zapCfg.OutputPaths = []string{*logPath}
	zapCfg.ErrorOutputPaths = []string{*logPath}
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if cfgErr != nil {
		logger.Warn("editor config unavailable, using defaults", zap.Error(cfgErr))
	}

	gm, err := gdata.Open(gdata.Config{AppName: cfg.Save.AppName})
	if err != nil {
		logger.Warn("session storage unavailable", zap.Error(err))
		gm = nil
	}

	ed, err := editor.New(editor.OptionsFromConfig(cfg, gm, logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create editor: %v\n", err)
		os.Exit(1)
	}
	if !*fresh {
		if _, err := ed.RestoreSession(); err != nil {
			logger.Warn("failed to restore session", zap.Error(err))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	tone := newTone(cfg.Sound, logger)
	ui := newTermUI(screen, ed, tone)

	ui.run()

	screen.Fini()
	tone.close()
	if cfg.Save.Autosave {
		if err := ed.Save(); err != nil {
			logger.Error("failed to save session", zap.Error(err))
		}
	}
}

// run 事件循环：事件在独立 goroutine 中读取，编辑器只在本 goroutine 中访问
func (u *termUI) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	u.draw()
	for {
		select {
		case ev := <-events:
			if !u.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			u.editor.Tick()
			u.draw()
		}
	}
}
