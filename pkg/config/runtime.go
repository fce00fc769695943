package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeOptions 启动参数
// 优先级：默认值 < 环境变量 < 命令行参数
type RuntimeOptions struct {
	Verbose    bool   `env:"GHOST_VERBOSE"`
	Seed       int64  `env:"GHOST_SEED"`  // 0 表示使用当前时间
	Level      string `env:"GHOST_LEVEL"` // 为空时使用 GameConfig.DefaultLevel
	ConfigPath string `env:"GHOST_CONFIG"`
}

// DefaultRuntimeOptions 返回默认启动参数
func DefaultRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{
		ConfigPath: "data/game.yaml",
	}
}

// audioEnv 可由环境变量覆盖的音频设置
type audioEnv struct {
	MusicVolume float64 `env:"GHOST_MUSIC_VOLUME"`
	SoundVolume float64 `env:"GHOST_SOUND_VOLUME"`
	Muted       bool    `env:"GHOST_MUTE"`
}

// ApplyEnv 用环境变量覆盖启动参数
// 未设置的变量保留原值
func ApplyEnv(opts *RuntimeOptions) error {
	if err := env.Parse(opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyAudioEnv 用环境变量覆盖音频设置，并重新验证音量范围
func ApplyAudioEnv(cfg *GameConfig) error {
	overrides := audioEnv{
		MusicVolume: cfg.Audio.MusicVolume,
		SoundVolume: cfg.Audio.SoundVolume,
		Muted:       cfg.Audio.Muted,
	}
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := validateVolume("musicVolume", overrides.MusicVolume); err != nil {
		return err
	}
	if err := validateVolume("soundVolume", overrides.SoundVolume); err != nil {
		return err
	}
	cfg.Audio.MusicVolume = overrides.MusicVolume
	cfg.Audio.SoundVolume = overrides.SoundVolume
	cfg.Audio.Muted = overrides.Muted
	return nil
}
