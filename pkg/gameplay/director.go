package gameplay

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/sequence"
)

// AmbientSettings 人类待机动画参数
type AmbientSettings struct {
	MinWait  int     // 随机等待下限（整秒）
	MaxWait  int     // 随机等待上限（整秒，含）
	TurnWait float64 // 转身间隔
	Sounds   []string
}

// NewAmbientSettings 从游戏配置提取待机动画参数
func NewAmbientSettings(cfg *config.GameConfig) AmbientSettings {
	return AmbientSettings{
		MinWait:  cfg.Ambient.MinWait,
		MaxWait:  cfg.Ambient.MaxWait,
		TurnWait: cfg.Ambient.TurnWait,
		Sounds:   cfg.Audio.AmbientSounds,
	}
}

// Director 人类待机动画导演
//
// 待机循环：随机等待 → 朝右并播放随机人声 → 等待 → 朝左 → 等待 → 朝右 → 重复。
// 人声播放成功时人类切换为疑惑姿势。
type Director struct {
	runner   *sequence.Runner
	sound    SoundService
	rng      *rand.Rand
	settings AmbientSettings
	logger   *log.Logger
}

// NewDirector 创建导演
// rng 为 nil 时使用随机种子
func NewDirector(runner *sequence.Runner, sound SoundService, rng *rand.Rand, settings AmbientSettings) *Director {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Director{
		runner:   runner,
		sound:    sound,
		rng:      rng,
		settings: settings,
		logger:   log.WithPrefix("Director"),
	}
}

// Start 在人类身上启动待机循环
// 随机等待时长在构建序列时抽取一次，之后每轮复用
func (d *Director) Start(human *Actor) sequence.Handle {
	seq := d.AmbientSequence(human)
	d.logger.Debug("ambient sequence started", "firstWait", seq.Actions[0].Duration)
	return d.runner.Run(TrackHuman, seq)
}

// AmbientSequence 构建待机循环序列
func (d *Director) AmbientSequence(human *Actor) sequence.Sequence {
	s := d.settings
	lookRight := func() {
		human.Pose = PoseIdle
		human.FacingRight = true
	}
	lookLeft := func() {
		human.Pose = PoseIdle
		human.FacingRight = false
	}

	return sequence.Sequence{
		Name:   "ambient",
		Repeat: true,
		Actions: []sequence.Action{
			sequence.Wait(float64(d.randomWait())),
			sequence.Do("lookRight", lookRight),
			sequence.Do("playSound", func() {
				if d.sound.PlayRandomFrom(s.Sounds) {
					human.Pose = PoseConfused
				}
			}),
			sequence.Wait(s.TurnWait),
			sequence.Do("lookLeft", lookLeft),
			sequence.Wait(s.TurnWait),
			sequence.Do("lookRight", lookRight),
		},
	}
}

// randomWait 在 [MinWait, MaxWait] 中均匀抽取整秒数
func (d *Director) randomWait() int {
	span := d.settings.MaxWait - d.settings.MinWait + 1
	if span <= 1 {
		return d.settings.MinWait
	}
	return d.settings.MinWait + d.rng.IntN(span)
}
