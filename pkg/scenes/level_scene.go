package scenes

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/entities"
	"github.com/decker502/ghostscare/pkg/game"
	"github.com/decker502/ghostscare/pkg/gameplay"
	"github.com/decker502/ghostscare/pkg/physics"
	"github.com/decker502/ghostscare/pkg/sequence"
	"github.com/decker502/ghostscare/pkg/systems"
	"github.com/decker502/ghostscare/pkg/utils"
)

// backgroundColor 关卡背景色
var backgroundColor = color.RGBA{R: 24, G: 26, B: 40, A: 255}

// SoundPlayer 关卡使用的音频服务
// *game.AudioManager 满足该接口
type SoundPlayer interface {
	gameplay.SoundService
	StopAll()
}

// Restarter 重新加载当前关卡
// *game.SceneManager 满足该接口
type Restarter interface {
	Restart(fadeSeconds float64) error
}

// LevelDeps 关卡场景的外部依赖
type LevelDeps struct {
	Images    entities.ImageSource
	Sound     SoundPlayer
	Restarter Restarter
	Config    *config.GameConfig
	// Rand 随机源（待机等待时长），为 nil 时使用随机种子
	Rand *rand.Rand
}

// LevelScene 一局游戏
//
// 每帧顺序：
//  1. Controller.OnTick（结束判定与持续移动）
//  2. 输入派发（按键、压力、点击）
//  3. 序列调度器推进
//  4. 物理步进（期间派发接触事件）
//  5. 角色状态同步到精灵
type LevelScene struct {
	levelID string
	deps    LevelDeps
	level   *config.LevelConfig

	entityManager *ecs.EntityManager
	world         *physics.World
	runner        *sequence.Runner
	controller    *gameplay.Controller
	director      *gameplay.Director

	physicsSystem     *systems.PhysicsSystem
	actorSpriteSystem *systems.ActorSpriteSystem
	renderSystem      *systems.RenderSystem
	clickSystem       *systems.ClickSystem

	pressure  *utils.PressureTracker
	touchKeys *utils.TouchKeys

	gameOverShown bool
	started       bool
	disposed      bool
	logger        *log.Logger
}

var (
	_ Scene              = (*LevelScene)(nil)
	_ game.Disposable    = (*LevelScene)(nil)
	_ game.Starter       = (*LevelScene)(nil)
	_ gameplay.Presenter = (*LevelScene)(nil)
)

// NewLevelScene 加载关卡配置并创建场景
// 关卡缺少 ghost/human 节点时返回 config.ErrMissingNode
func NewLevelScene(deps LevelDeps, levelID string) (*LevelScene, error) {
	level, err := config.LoadLevelConfig(config.LevelPath(levelID))
	if err != nil {
		return nil, err
	}
	return newLevelScene(deps, level)
}

// newLevelScene 按关卡配置搭建世界、实体和玩法状态机
func newLevelScene(deps LevelDeps, level *config.LevelConfig) (*LevelScene, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
		deps.Config = cfg
	}

	s := &LevelScene{
		levelID:       level.ID,
		deps:          deps,
		level:         level,
		entityManager: ecs.NewEntityManager(),
		runner:        sequence.NewRunner(),
		pressure:      utils.NewPressureTracker(cfg.Pressure.DeepPressThreshold),
		touchKeys:     &utils.TouchKeys{},
		logger:        log.WithPrefix("LevelScene"),
	}

	worldW := max(level.Columns()*level.TileSize, cfg.Window.Width)
	worldH := max(level.Rows()*level.TileSize, cfg.Window.Height)
	s.world = physics.NewWorld(worldW, worldH, cfg.Physics.CellSize, cfg.Physics.Gravity)

	entities.NewGroundTiles(s.entityManager, s.world, deps.Images, level)

	ghostNode := level.Nodes[config.NodeGhost]
	humanNode := level.Nodes[config.NodeHuman]
	ghost := gameplay.NewActor(gameplay.RoleGhost, ghostNode.X, ghostNode.Y, ghostNode.Width, ghostNode.Height)
	human := gameplay.NewActor(gameplay.RoleHuman, humanNode.X, humanNode.Y, humanNode.Width, humanNode.Height)

	// 控制器负责把幽灵设为半透明基线，必须在创建精灵之前
	s.controller = gameplay.NewController(ghost, human, s.runner, deps.Sound, s, gameplay.NewSettings(cfg))
	s.director = gameplay.NewDirector(s.runner, deps.Sound, deps.Rand, gameplay.NewAmbientSettings(cfg))

	entities.NewGhostEntity(s.entityManager, s.world, deps.Images, ghost, ghostNode.Image)
	entities.NewHumanEntity(s.entityManager, s.world, deps.Images, human, humanNode.Image)

	s.world.SetContactListener(physics.ContactListenerFunc(func(c physics.Contact) {
		s.controller.OnContact(c.A.Category(), c.B.Category())
	}))

	s.physicsSystem = systems.NewPhysicsSystem(s.entityManager, s.world)
	s.actorSpriteSystem = systems.NewActorSpriteSystem(s.entityManager)
	s.renderSystem = systems.NewRenderSystem(s.entityManager)
	s.clickSystem = systems.NewClickSystem(s.entityManager)

	s.logger.Info("level loaded", "level", level.ID, "tiles", len(level.GroundTiles()), "entities", s.entityManager.EntityCount())
	return s, nil
}

// LevelID 返回关卡ID
func (s *LevelScene) LevelID() string {
	return s.levelID
}

// Controller 返回玩法状态机
func (s *LevelScene) Controller() *gameplay.Controller {
	return s.controller
}

// Start 开始播放背景音乐并启动人类的待机动画
// 由场景管理器在本场景成为当前场景时调用，重复调用无效
func (s *LevelScene) Start() {
	if s.started || s.disposed {
		return
	}
	s.started = true
	music := s.deps.Config.Audio.BackgroundMusic
	if !s.deps.Sound.PlayLoop(music) {
		s.logger.Warn("background music unavailable", "id", music)
	}
	s.director.Start(s.controller.Human())
}

// Update 推进一帧
func (s *LevelScene) Update(deltaTime float64) {
	s.controller.OnTick(deltaTime)
	s.pollInput()
	// 点击重新开始后本场景已被替换
	if s.disposed {
		return
	}
	s.simulate(deltaTime)
}

// pollInput 读取本帧输入并派发给状态机
func (s *LevelScene) pollInput() {
	gameplay.DispatchKeys(s.controller, utils.JustPressedChars(), true)
	gameplay.DispatchKeys(s.controller, utils.JustReleasedChars(), false)

	if utils.IsMobile() {
		pressed, released := s.touchKeys.Update(s.deps.Config.Window.Width)
		gameplay.DispatchKeys(s.controller, pressed, true)
		gameplay.DispatchKeys(s.controller, released, false)
	}

	if changed, pressure, stage := s.pressure.Update(); changed {
		s.controller.OnPressureChange(pressure, stage)
	}

	if tapped, x, y := utils.IsJustTouchedOrClicked(); tapped {
		s.Tap(float64(x), float64(y))
	}
}

// Tap 对坐标处的每个可点击节点派发点击事件
func (s *LevelScene) Tap(x, y float64) {
	for _, node := range s.clickSystem.NodesAt(x, y) {
		s.controller.OnTap(node)
	}
}

// simulate 推进序列、物理和精灵同步
func (s *LevelScene) simulate(deltaTime float64) {
	s.runner.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.actorSpriteSystem.Update()
}

// Draw 绘制关卡
func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)
}

// ShowGameOver 显示结束弹窗（只显示一次）
func (s *LevelScene) ShowGameOver() {
	if s.gameOverShown {
		return
	}
	s.gameOverShown = true
	s.logger.Info("game over")
	entities.NewGameOverEntities(s.entityManager, s.deps.Images, s.deps.Config.Window.Width, s.deps.Config.Window.Height)
}

// GameOverShown 结束弹窗是否已显示
func (s *LevelScene) GameOverShown() bool {
	return s.gameOverShown
}

// Restart 以交叉淡入淡出重新加载当前关卡
func (s *LevelScene) Restart() {
	if s.deps.Restarter == nil {
		s.logger.Warn("restart requested without a scene manager")
		return
	}
	if err := s.deps.Restarter.Restart(s.deps.Config.CrossFadeSeconds); err != nil {
		s.logger.Error("restart failed", "level", s.levelID, "err", err)
	}
}

// Dispose 停止本关的全部音频
func (s *LevelScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.deps.Sound.StopAll()
}
