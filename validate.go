package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/ghostscare/pkg/app"
	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/embedded"
	"github.com/decker502/ghostscare/pkg/game"
	"github.com/decker502/ghostscare/pkg/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate game config, level and resource manifest",
	Long: `Load and validate the game config, the selected level and the
resource manifest without opening a window.

A level without a "ghost" or "human" node is rejected.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := runtimeOptions(cmd)
	if err != nil {
		return err
	}
	logging.Setup(opts.Verbose)
	embedded.Init(assetsFS, dataFS)

	gameCfg, err := app.LoadGameConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	levelID := opts.Level
	if levelID == "" {
		levelID = gameCfg.DefaultLevel
	}
	level, err := config.LoadLevelConfig(config.LevelPath(levelID))
	if err != nil {
		return err
	}

	rm := game.NewResourceManager(nil)
	if err := rm.LoadResourceConfig(app.ResourceConfigPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config:    %s ok\n", opts.ConfigPath)
	fmt.Fprintf(out, "level:     %s\n", level)
	fmt.Fprintf(out, "resources: %s ok\n", app.ResourceConfigPath)
	return nil
}
