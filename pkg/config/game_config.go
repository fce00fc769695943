package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GameConfig 游戏调参配置
//
// 配置文件位置: data/game.yaml
// 所有时间单位为秒，距离单位为像素。
type GameConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Movement MovementConfig `yaml:"movement"`
	Terminal TerminalConfig `yaml:"terminal"`
	Ambient  AmbientConfig  `yaml:"ambient"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Audio    AudioConfig    `yaml:"audio"`
	Pressure PressureConfig `yaml:"pressure"`

	// CrossFadeSeconds 重新开始时场景交叉淡入淡出时长
	CrossFadeSeconds float64 `yaml:"crossFadeSeconds"`
	// DefaultLevel 未指定关卡时加载的关卡ID
	DefaultLevel string `yaml:"defaultLevel"`
}

// WindowConfig 窗口与逻辑屏幕尺寸
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MovementConfig 幽灵移动参数
type MovementConfig struct {
	// StepPerTick 按住方向键时每帧的水平位移
	StepPerTick float64 `yaml:"stepPerTick"`
	// HalfAlpha 幽灵未被操控时的透明度基线
	HalfAlpha float64 `yaml:"halfAlpha"`
}

// TerminalConfig 人类被惊吓后的终局动画参数
type TerminalConfig struct {
	SurpriseWait float64 `yaml:"surpriseWait"` // 惊吓后停顿
	FallOffsetX  float64 `yaml:"fallOffsetX"`  // 后退的水平距离
	FallDuration float64 `yaml:"fallDuration"` // 后退用时
	FallenWait   float64 `yaml:"fallenWait"`   // 倒地后恢复重力前的等待
}

// AmbientConfig 人类待机动画参数
type AmbientConfig struct {
	MinWait  int     `yaml:"minWait"`  // 随机等待下限（整秒）
	MaxWait  int     `yaml:"maxWait"`  // 随机等待上限（整秒，含）
	TurnWait float64 `yaml:"turnWait"` // 每次转身之间的等待
}

// PhysicsConfig 物理世界参数
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"`
	CellSize int     `yaml:"cellSize"`
}

// AudioConfig 音频资源ID与音量
type AudioConfig struct {
	BackgroundMusic string   `yaml:"backgroundMusic"`
	AmbientSounds   []string `yaml:"ambientSounds"`
	SurprisedSound  string   `yaml:"surprisedSound"`
	MusicVolume     float64  `yaml:"musicVolume"`
	SoundVolume     float64  `yaml:"soundVolume"`
	Muted           bool     `yaml:"muted"`
}

// PressureConfig 模拟扳机压力输入参数
type PressureConfig struct {
	// DeepPressThreshold 压力值达到该阈值时视为第二段（stage 2）
	DeepPressThreshold float64 `yaml:"deepPressThreshold"`
}

// DefaultGameConfig 返回默认配置（与原版手感一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Ghost Scare",
		},
		Movement: MovementConfig{
			StepPerTick: 2,
			HalfAlpha:   0.5,
		},
		Terminal: TerminalConfig{
			SurpriseWait: 1,
			FallOffsetX:  120,
			FallDuration: 1,
			FallenWait:   2,
		},
		Ambient: AmbientConfig{
			MinWait:  1,
			MaxWait:  5,
			TurnWait: 2,
		},
		Physics: PhysicsConfig{
			Gravity:  980,
			CellSize: 32,
		},
		Audio: AudioConfig{
			BackgroundMusic: "SOUND_BACKGROUND_MUSIC",
			AmbientSounds:   []string{"SOUND_HUMAN_1", "SOUND_HUMAN_2", "SOUND_HUMAN_3"},
			SurprisedSound:  "SOUND_HUMAN_SURPRISED",
			MusicVolume:     0.7,
			SoundVolume:     0.8,
		},
		Pressure: PressureConfig{
			DeepPressThreshold: 0.8,
		},
		CrossFadeSeconds: 1,
		DefaultLevel:     "level_one",
	}
}

// LoadGameConfig 加载游戏配置
//
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 从 YAML 数据解析游戏配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Movement.StepPerTick < 0 {
		return fmt.Errorf("movement stepPerTick must be >= 0, got %.2f", c.Movement.StepPerTick)
	}
	if c.Movement.HalfAlpha < 0 || c.Movement.HalfAlpha >= 1 {
		return fmt.Errorf("movement halfAlpha must be in [0, 1), got %.2f", c.Movement.HalfAlpha)
	}
	if c.Terminal.SurpriseWait < 0 || c.Terminal.FallDuration < 0 || c.Terminal.FallenWait < 0 {
		return fmt.Errorf("terminal durations must be >= 0")
	}
	if c.Ambient.MinWait < 0 || c.Ambient.MinWait > c.Ambient.MaxWait {
		return fmt.Errorf("ambient wait range invalid: min(%d) > max(%d)", c.Ambient.MinWait, c.Ambient.MaxWait)
	}
	if c.Ambient.TurnWait < 0 {
		return fmt.Errorf("ambient turnWait must be >= 0, got %.2f", c.Ambient.TurnWait)
	}
	if c.Physics.CellSize <= 0 {
		return fmt.Errorf("physics cellSize must be positive, got %d", c.Physics.CellSize)
	}
	if err := validateVolume("musicVolume", c.Audio.MusicVolume); err != nil {
		return err
	}
	if err := validateVolume("soundVolume", c.Audio.SoundVolume); err != nil {
		return err
	}
	if c.Pressure.DeepPressThreshold <= 0 || c.Pressure.DeepPressThreshold > 1 {
		return fmt.Errorf("pressure deepPressThreshold must be in (0, 1], got %.2f", c.Pressure.DeepPressThreshold)
	}
	if c.CrossFadeSeconds < 0 {
		return fmt.Errorf("crossFadeSeconds must be >= 0, got %.2f", c.CrossFadeSeconds)
	}
	return nil
}

func validateVolume(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("audio %s must be in [0, 1], got %.2f", name, v)
	}
	return nil
}
