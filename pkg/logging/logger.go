// Package logging 根据编辑器配置构建 zap 日志
package logging

import (
	"github.com/gonewx/tilebuild/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建日志
//
// format 为 json 时使用生产配置；否则使用带颜色级别、短时间格式的控制台输出。
// 无法识别的级别回退为 info。
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := NewConfig(cfg)
	return zapCfg.Build()
}

// NewConfig 返回 New 使用的 zap.Config，便于宿主程序调整输出位置
func NewConfig(cfg config.LoggingConfig) zap.Config {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	return zapCfg
}

// ParseLevel 解析日志级别，失败时返回 info
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
