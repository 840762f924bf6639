package main

import (
	"time"

	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// abortPitch 提交被放弃时提示音的频率倍数
const abortPitch = 0.5

// tone 提交提示音，音频设备不可用时静默
type tone struct {
	enabled   bool
	frequency float64
	duration  time.Duration
}

func newTone(cfg config.SoundConfig, logger *zap.Logger) *tone {
	t := &tone{
		frequency: cfg.Frequency,
		duration:  time.Duration(cfg.DurationMs) * time.Millisecond,
	}
	if cfg.Mute {
		return t
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Warn("audio unavailable, commit tone disabled", zap.Error(err))
		return t
	}
	t.enabled = true
	return t
}

// frequencyFor 返回提示音频率，放弃的提交降低一个八度
func (t *tone) frequencyFor(aborted bool) float64 {
	if aborted {
		return t.frequency * abortPitch
	}
	return t.frequency
}

// play 播放提交提示音
func (t *tone) play(aborted bool) {
	if !t.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.frequencyFor(aborted))
	if err != nil {
		return
	}
	quiet := &effects.Volume{Streamer: beep.Take(sampleRate.N(t.duration), sine), Base: 2, Volume: -2}
	speaker.Play(quiet)
}

func (t *tone) close() {
	if t.enabled {
		speaker.Close()
	}
}
