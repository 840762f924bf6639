package config

import (
	"fmt"
	"os"

	"github.com/gonewx/tilebuild/pkg/types"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EditorConfig 编辑器配置
//
// 配置文件位置: data/config/editor.yaml
type EditorConfig struct {
	Window  WindowConfig  `yaml:"window"`
	Grid    GridConfig    `yaml:"grid"`
	Preview PreviewConfig `yaml:"preview"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Save    SaveConfig    `yaml:"save"`
	Sound   SoundConfig   `yaml:"sound"`

	// Layout 启动时加载的地图布局（TOML）
	Layout string `yaml:"layout"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// GridConfig 网格在屏幕上的摆放
type GridConfig struct {
	// CellSize 每个格子的边长（像素）
	CellSize float64 `yaml:"cellSize"`
	// OriginX, OriginY 网格左上角在屏幕上的位置
	OriginX float64 `yaml:"originX"`
	OriginY float64 `yaml:"originY"`
}

// PreviewConfig 预览图块配置
type PreviewConfig struct {
	// PoolSize 预热的预览句柄数量
	PoolSize int `yaml:"poolSize"`
	// Lift 预览相对地块表面的竖直偏移
	Lift float64 `yaml:"lift"`
	// Alpha 预览的不透明度 0.0 ~ 1.0
	Alpha float64 `yaml:"alpha"`
}

// BuildConfig 建造配置
type BuildConfig struct {
	// DefaultTileType 启动时的铺设类型（如 "Grass"）
	DefaultTileType string `yaml:"defaultTileType"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	// Level debug / info / warn / error
	Level string `yaml:"level"`
	// Format console / json
	Format string `yaml:"format"`
}

// SaveConfig 会话存档配置
type SaveConfig struct {
	// AppName gdata 存储目录名
	AppName string `yaml:"appName"`
	// Autosave 退出时自动保存会话
	Autosave bool `yaml:"autosave"`
}

// SoundConfig 终端编辑器的提交提示音
type SoundConfig struct {
	Mute       bool    `yaml:"mute"`
	Frequency  float64 `yaml:"frequency"`
	DurationMs int     `yaml:"durationMs"`
}

// 默认值
const (
	DefaultWindowWidth     = 960
	DefaultWindowHeight    = 720
	DefaultWindowTitle     = "tilebuild"
	DefaultCellSize        = 40.0
	DefaultPreviewPoolSize = 200
	DefaultPreviewLift     = 0.01
	DefaultPreviewAlpha    = 0.5
	DefaultTileTypeName    = "Generic"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultAppName         = "tilebuild"
	DefaultToneFrequency   = 880.0
	DefaultToneDurationMs  = 80
)

// DefaultEditorConfig 返回全部使用默认值的配置
// 配置文件缺失时宿主程序使用它启动
func DefaultEditorConfig() *EditorConfig {
	cfg := &EditorConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadEditorConfig 加载编辑器配置
//
// 参数:
//   - path: 配置文件路径（如 "data/config/editor.yaml"）
//
// 返回:
//   - *EditorConfig: 应用默认值并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadEditorConfig(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config %s: %w", path, err)
	}

	cfg, err := ParseEditorConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid editor config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEditorConfig 从 YAML 数据解析配置
func ParseEditorConfig(data []byte) (*EditorConfig, error) {
	var cfg EditorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *EditorConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = DefaultWindowTitle
	}
	if cfg.Grid.CellSize == 0 {
		cfg.Grid.CellSize = DefaultCellSize
	}
	if cfg.Preview.PoolSize == 0 {
		cfg.Preview.PoolSize = DefaultPreviewPoolSize
	}
	if cfg.Preview.Lift == 0 {
		cfg.Preview.Lift = DefaultPreviewLift
	}
	if cfg.Preview.Alpha == 0 {
		cfg.Preview.Alpha = DefaultPreviewAlpha
	}
	if cfg.Build.DefaultTileType == "" {
		cfg.Build.DefaultTileType = DefaultTileTypeName
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Save.AppName == "" {
		cfg.Save.AppName = DefaultAppName
	}
	if cfg.Sound.Frequency == 0 {
		cfg.Sound.Frequency = DefaultToneFrequency
	}
	if cfg.Sound.DurationMs == 0 {
		cfg.Sound.DurationMs = DefaultToneDurationMs
	}
}

// Validate 校验配置
func (c *EditorConfig) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Grid.CellSize < 0 {
		return fmt.Errorf("grid cellSize must be positive, got %.2f", c.Grid.CellSize)
	}
	if c.Preview.PoolSize < 0 {
		return fmt.Errorf("preview poolSize must not be negative, got %d", c.Preview.PoolSize)
	}
	if c.Preview.Lift < 0 {
		return fmt.Errorf("preview lift must not be negative, got %.3f", c.Preview.Lift)
	}
	if c.Preview.Alpha < 0 || c.Preview.Alpha > 1 {
		return fmt.Errorf("preview alpha must be within [0, 1], got %.2f", c.Preview.Alpha)
	}

	tile, ok := types.ParseTileType(c.Build.DefaultTileType)
	if !ok {
		return fmt.Errorf("unknown build defaultTileType %q", c.Build.DefaultTileType)
	}
	if tile.IsEmpty() {
		return fmt.Errorf("build defaultTileType must not be None")
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging format must be console or json, got %q", c.Logging.Format)
	}
	if c.Sound.Frequency < 0 || c.Sound.DurationMs < 0 {
		return fmt.Errorf("sound frequency and duration must not be negative")
	}
	return nil
}

// DefaultTile 返回解析后的默认铺设类型，解析失败时回退为 Generic
func (c *EditorConfig) DefaultTile() types.TileType {
	if t, ok := types.ParseTileType(c.Build.DefaultTileType); ok && !t.IsEmpty() {
		return t
	}
	return types.TileGeneric
}
