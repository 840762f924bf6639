package app

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gonewx/tilebuild/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// 提示音
const (
	commitVolume = 0.25
	abortPitch   = 0.5
)

// AudioManager 提交提示音
// 成功提交播放配置频率的短音，放弃的提交播放低八度的短音
type AudioManager struct {
	context *audio.Context
	logger  *zap.Logger

	commitTone []byte
	abortTone  []byte
	enabled    bool
}

// NewAudioManager 创建音频管理器
//
// 参数:
//   - ctx: ebiten 音频上下文，为 nil 时静默
//   - cfg: 提示音配置
//   - logger: 日志
func NewAudioManager(ctx *audio.Context, cfg config.SoundConfig, logger *zap.Logger) *AudioManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	duration := time.Duration(cfg.DurationMs) * time.Millisecond
	return &AudioManager{
		context:    ctx,
		logger:     logger.Named("audio"),
		commitTone: SineTonePCM(audioSampleRate, cfg.Frequency, duration, commitVolume),
		abortTone:  SineTonePCM(audioSampleRate, cfg.Frequency*abortPitch, duration, commitVolume),
		enabled:    ctx != nil && !cfg.Mute,
	}
}

// PlayCommit 播放提交提示音
func (am *AudioManager) PlayCommit(aborted bool) {
	if !am.enabled {
		return
	}
	pcm := am.commitTone
	if aborted {
		pcm = am.abortTone
	}
	player := am.context.NewPlayerFromBytes(pcm)
	player.Play()
}

// SineTonePCM 生成 16 位小端立体声正弦波 PCM
// 首尾各 5ms 线性淡入淡出，避免爆音
func SineTonePCM(sampleRate int, frequency float64, duration time.Duration, volume float64) []byte {
	n := int(float64(sampleRate) * duration.Seconds())
	if n <= 0 || frequency <= 0 {
		return nil
	}
	fade := sampleRate / 200
	if fade*2 > n {
		fade = n / 2
	}

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1.0
		if fade > 0 {
			if i < fade {
				env = float64(i) / float64(fade)
			} else if i >= n-fade {
				env = float64(n-1-i) / float64(fade)
			}
		}
		v := math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)) * volume * env
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
