package config

import (
	"testing"
)

// 从 pkg/config 运行测试时的项目根目录
const projectRoot = "../../"

// TestShippedConfigs 随游戏发布的配置文件必须能通过校验
func TestShippedConfigs(t *testing.T) {
	cfg, err := LoadGameConfig(projectRoot + "data/game.yaml")
	if err != nil {
		t.Fatalf("data/game.yaml: %v", err)
	}
	if cfg.DefaultLevel == "" {
		t.Fatal("shipped config should name a default level")
	}
	if cfg.Movement != DefaultGameConfig().Movement {
		t.Errorf("shipped movement %+v differs from defaults", cfg.Movement)
	}

	level, err := LoadLevelConfig(projectRoot + LevelPath(cfg.DefaultLevel))
	if err != nil {
		t.Fatalf("default level: %v", err)
	}

	// 两个角色都应站在地面瓦片上
	for _, name := range []string{NodeGhost, NodeHuman} {
		node := level.Nodes[name]
		bottom := node.Y + node.Height
		row := int(bottom) / level.TileSize
		col := int(node.X) / level.TileSize
		if row >= level.Rows() || []rune(level.Tiles[row])[col] != TileGround {
			t.Errorf("%s at (%.0f, %.0f) is not standing on ground", name, node.X, bottom)
		}
	}
}
