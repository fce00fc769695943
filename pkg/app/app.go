// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/game"
	"github.com/decker502/ghostscare/pkg/scenes"
)

// ResourceConfigPath 资源清单路径
const ResourceConfigPath = "assets/config/resources.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定要加载的关卡ID，为空时使用 GameConfig.DefaultLevel
	Level string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// ConfigPath 游戏配置文件路径
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	audioManager             *game.AudioManager
	gameConfig               *config.GameConfig
	verbose                  bool
	muted                    bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	logger                   *log.Logger
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源，
// 并调用 logging.Setup() 设置日志级别。
func NewApp(cfg Config) (*App, error) {
	logger := log.WithPrefix("App")

	gameCfg, err := LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	rng := NewRand(cfg.Seed)

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	audioManager := game.NewAudioManager(resourceManager, gameCfg.Audio, rng)
	logger.Debug("AudioManager initialized", "muted", gameCfg.Audio.Muted)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	deps := scenes.LevelDeps{
		Images:    resourceManager,
		Sound:     audioManager,
		Restarter: sceneManager,
		Config:    gameCfg,
		Rand:      rng,
	}
	sceneManager.SetSceneFactory(func(levelID string) (game.Scene, error) {
		return scenes.NewLevelScene(deps, levelID)
	})

	levelToLoad := cfg.Level
	if levelToLoad == "" {
		levelToLoad = gameCfg.DefaultLevel
	}
	logger.Info("starting level", "level", levelToLoad, "seed", cfg.Seed)
	if err := sceneManager.LoadLevel(levelToLoad); err != nil {
		return nil, err
	}

	return &App{
		sceneManager: sceneManager,
		audioManager: audioManager,
		gameConfig:   gameCfg,
		verbose:      cfg.Verbose,
		muted:        gameCfg.Audio.Muted,
		logger:       logger,
	}, nil
}

// LoadGameConfig 加载游戏配置并应用音频相关的环境变量
// path 为空时使用默认配置
func LoadGameConfig(path string) (*config.GameConfig, error) {
	gameCfg := config.DefaultGameConfig()
	if path != "" {
		loaded, err := config.LoadGameConfig(path)
		if err != nil {
			return nil, err
		}
		gameCfg = loaded
	}
	if err := config.ApplyAudioEnv(gameCfg); err != nil {
		return nil, fmt.Errorf("audio env: %w", err)
	}
	return gameCfg, nil
}

// NewRand 按种子创建随机源，种子为 0 时使用当前时间
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// WindowSize 返回窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.gameConfig.Window.Width, a.gameConfig.Window.Height
}

// WindowTitle 返回窗口标题
func (a *App) WindowTitle() string {
	return a.gameConfig.Window.Title
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.logger.Debug("exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// M 静音开关
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.ToggleMute()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// ToggleMute 切换静音
func (a *App) ToggleMute() {
	a.muted = !a.muted
	a.audioManager.SetMuted(a.muted)
	a.logger.Info("mute toggled", "muted", a.muted)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
