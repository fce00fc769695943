package gameplay

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/physics"
	"github.com/decker502/ghostscare/pkg/sequence"
)

// Settings 玩法参数（秒、像素）
type Settings struct {
	StepPerTick float64
	HalfAlpha   float64

	SurpriseWait   float64
	FallOffsetX    float64
	FallDuration   float64
	FallenWait     float64
	SurprisedSound string
}

// NewSettings 从游戏配置提取玩法参数
func NewSettings(cfg *config.GameConfig) Settings {
	return Settings{
		StepPerTick:    cfg.Movement.StepPerTick,
		HalfAlpha:      cfg.Movement.HalfAlpha,
		SurpriseWait:   cfg.Terminal.SurpriseWait,
		FallOffsetX:    cfg.Terminal.FallOffsetX,
		FallDuration:   cfg.Terminal.FallDuration,
		FallenWait:     cfg.Terminal.FallenWait,
		SurprisedSound: cfg.Audio.SurprisedSound,
	}
}

// Controller 玩法状态机
//
// 状态只有两个：Active（玩家操控幽灵）和 Caught（终局，只进入一次）。
// 进入 Caught 有两条路径：
//   - 幽灵接触人类（OnContact）：播放惊吓音效并运行终局动画
//   - 人类背对时幽灵现身（OnTick 的结束判定）：人类切换为 Caught 姿势
type Controller struct {
	state     GameState
	ghost     *Actor
	human     *Actor
	runner    *sequence.Runner
	sound     SoundService
	presenter Presenter
	settings  Settings
	logger    *log.Logger
}

// NewController 创建状态机
// 幽灵以半透明基线开局
func NewController(ghost, human *Actor, runner *sequence.Runner, sound SoundService, presenter Presenter, settings Settings) *Controller {
	ghost.Alpha = settings.HalfAlpha
	return &Controller{
		state:     NewGameState(),
		ghost:     ghost,
		human:     human,
		runner:    runner,
		sound:     sound,
		presenter: presenter,
		settings:  settings,
		logger:    log.WithPrefix("Gameplay"),
	}
}

var _ Handler = (*Controller)(nil)

// State 返回当前状态快照
func (c *Controller) State() GameState {
	return c.state
}

// Ghost 返回幽灵
func (c *Controller) Ghost() *Actor {
	return c.ghost
}

// Human 返回人类
func (c *Controller) Human() *Actor {
	return c.human
}

// OnContact 处理接触事件
// 只有幽灵与人类的接触才会触发终局；终局后重复的接触被忽略
func (c *Controller) OnContact(a, b physics.CollisionTag) {
	if physics.Classify(a, b) != physics.ContactGhostHuman {
		return
	}
	if c.state.IsOver {
		c.logger.Debug("contact ignored, game already over")
		return
	}

	c.logger.Info("ghost touched human")
	c.state.lock()
	c.state.IsOver = true
	c.runner.Cancel(TrackHuman)

	if !c.sound.PlayOnce(c.settings.SurprisedSound) {
		c.logger.Warn("surprised sound unavailable", "id", c.settings.SurprisedSound)
	}

	c.human.FacingRight = false
	c.human.Pose = PoseSurprised
	c.human.GravityEnabled = false

	c.runner.Run(TrackHuman, c.terminalSequence())
}

// terminalSequence 终局动画：停顿 → 后退 → 倒地 → 等待 → 恢复重力 → 结束弹窗
func (c *Controller) terminalSequence() sequence.Sequence {
	s := c.settings
	return sequence.Sequence{
		Name:      "terminal",
		Protected: true,
		Actions: []sequence.Action{
			sequence.Wait(s.SurpriseWait),
			sequence.MoveBy(s.FallOffsetX, 0, s.FallDuration, c.human.Translate),
			sequence.Do("fall", func() { c.human.Pose = PoseFallen }),
			sequence.Wait(s.FallenWait),
			sequence.Do("enableGravity", func() { c.human.GravityEnabled = true }),
			sequence.Do("gameOver", c.presenter.ShowGameOver),
		},
	}
}

// OnTick 每帧开始时调用
//
//  1. 结束判定：幽灵现身（不透明度高于基线）且人类朝左
//  2. 持续移动：未锁定时按方向意图每帧平移固定步长，两个方向可同时生效
func (c *Controller) OnTick(dt float64) {
	if !c.state.IsOver && c.ghost.Alpha > c.settings.HalfAlpha && !c.human.FacingRight {
		c.logger.Info("human caught the ghost")
		c.state.IsOver = true
		c.human.Pose = PoseCaught
		c.runner.Cancel(TrackHuman)
		c.state.lock()
		c.presenter.ShowGameOver()
	}

	if c.state.Locked() {
		return
	}
	if c.state.MovingRight {
		c.ghost.X += c.settings.StepPerTick
	}
	if c.state.MovingLeft {
		c.ghost.X -= c.settings.StepPerTick
	}
}

// OnKeyDown 方向键按下：设置移动意图，幽灵现身，必要时转身
func (c *Controller) OnKeyDown(key rune) {
	if c.state.Locked() {
		return
	}
	switch key {
	case KeyRight:
		c.state.MovingRight = true
		c.turnGhost(true)
	case KeyLeft:
		c.state.MovingLeft = true
		c.turnGhost(false)
	}
}

// turnGhost 幽灵现身并朝向 right 方向
// 只在方向与当前朝向相反时镜像一次
func (c *Controller) turnGhost(right bool) {
	c.ghost.Alpha = 1
	if c.state.FacingRight != right {
		c.ghost.FacingRight = !c.ghost.FacingRight
	}
	c.state.face(right)
}

// OnKeyUp 方向键松开：清除意图，停止幽灵的动作，恢复半透明
func (c *Controller) OnKeyUp(key rune) {
	if c.state.Locked() {
		return
	}
	switch key {
	case KeyRight:
		c.state.MovingRight = false
	case KeyLeft:
		c.state.MovingLeft = false
	default:
		return
	}
	c.runner.Cancel(TrackGhost)
	c.ghost.Alpha = c.settings.HalfAlpha
}

// OnPressureChange 压力输入：沿当前朝向移动 pressure × stage
// stage 为 0 时恢复半透明
func (c *Controller) OnPressureChange(pressure float64, stage int) {
	if c.state.Locked() {
		return
	}
	distance := pressure * float64(stage)
	if c.state.FacingRight {
		c.ghost.X += distance
	} else {
		c.ghost.X -= distance
	}
	if stage == 0 {
		c.ghost.Alpha = c.settings.HalfAlpha
	} else {
		c.ghost.Alpha = 1
	}
}

// OnTap 点击"重新开始"标签时重新加载关卡
func (c *Controller) OnTap(node string) {
	if node != NodeRestart {
		return
	}
	c.logger.Info("restart requested")
	c.presenter.Restart()
}
