// ghostscare 是一个 2D 潜行小游戏：玩家操控幽灵靠近人类并吓倒他，
// 但不能在人类回头时现身。
//
// Usage:
//
//	ghostscare                 - 启动游戏窗口
//	ghostscare validate        - 校验配置和关卡文件，不打开窗口
//
// Global flags:
//
//	--verbose        - 输出调试日志
//	--seed <value>   - 随机种子（0 = 使用当前时间）
//	--level <id>     - 关卡ID（默认读取 game.yaml 的 defaultLevel）
//	--config <path>  - 游戏配置文件（默认 data/game.yaml）
//
// 环境变量 GHOST_VERBOSE / GHOST_SEED / GHOST_LEVEL / GHOST_CONFIG 提供相同设置，
// 命令行参数优先。
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/ghostscare/pkg/app"
	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/embedded"
	"github.com/decker502/ghostscare/pkg/logging"
)

var (
	// Global flags
	flagVerbose bool
	flagSeed    int64
	flagLevel   string
	flagConfig  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ghostscare",
	Short: "Ghost Scare - sneak up on the human without being seen",
	Long: `Ghost Scare is a small 2D stealth game.

Controls:
  D / A          - Move the ghost right / left (the ghost becomes visible)
  Gamepad R2     - Glide along the facing direction, deeper press moves further
  Click / Tap    - "Tap to Restart" after the game ends
  M              - Toggle mute
  F11            - Toggle fullscreen

Examples:
  ghostscare
  ghostscare --level level_one --seed 42
  ghostscare validate`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level ID to load")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")

	rootCmd.AddCommand(validateCmd)
}

// runtimeOptions 合并默认值、环境变量和命令行参数
func runtimeOptions(cmd *cobra.Command) (config.RuntimeOptions, error) {
	opts := config.DefaultRuntimeOptions()
	if err := config.ApplyEnv(&opts); err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		opts.Verbose = flagVerbose
	}
	if flags.Changed("seed") {
		opts.Seed = flagSeed
	}
	if flags.Changed("level") {
		opts.Level = flagLevel
	}
	if flags.Changed("config") {
		opts.ConfigPath = flagConfig
	}
	return opts, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	opts, err := runtimeOptions(cmd)
	if err != nil {
		return err
	}
	logging.Setup(opts.Verbose)

	// 初始化嵌入资源
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    opts.Verbose,
		Level:      opts.Level,
		Seed:       opts.Seed,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return fmt.Errorf("游戏初始化失败: %w", err)
	}

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(gameApp.WindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("game started", "width", width, "height", height)
	return ebiten.RunGame(gameApp)
}
