package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// 关卡必需的角色节点名
const (
	NodeGhost = "ghost"
	NodeHuman = "human"
)

// TileGround 瓦片地图中表示地面的字符
const TileGround = '#'

// ErrMissingNode 关卡缺少必需的角色节点（ghost/human）
var ErrMissingNode = errors.New("missing required node")

// LevelConfig 关卡配置数据结构
//
// 配置文件位置: data/levels/<id>.yaml
//
// 结构示例:
//
//	id: level_one
//	tileSize: 32
//	tileImage: IMAGE_TILE_GROUND
//	tiles:
//	  - "................"
//	  - "################"
//	nodes:
//	  ghost: {x: 120, y: 500, width: 48, height: 64, image: IMAGE_GHOST}
//	  human: {x: 600, y: 480, width: 48, height: 96}
type LevelConfig struct {
	ID        string                `yaml:"id"`        // 关卡ID
	Name      string                `yaml:"name"`      // 关卡名称
	TileSize  int                   `yaml:"tileSize"`  // 瓦片边长（像素）
	TileImage string                `yaml:"tileImage"` // 地面瓦片图片资源ID
	Tiles     []string              `yaml:"tiles"`     // 瓦片行，自上而下，'#' 为地面
	Nodes     map[string]NodeConfig `yaml:"nodes"`     // 场景节点（角色出生点等）
}

// NodeConfig 场景节点
type NodeConfig struct {
	X      float64 `yaml:"x"`      // 左上角X
	Y      float64 `yaml:"y"`      // 左上角Y
	Width  float64 `yaml:"width"`  // 宽度
	Height float64 `yaml:"height"` // 高度
	Image  string  `yaml:"image"`  // 图片资源ID（可选）
}

// TileCell 一个地面瓦片的位置
type TileCell struct {
	Col, Row int
}

// LoadLevelConfig 从YAML文件加载关卡配置
//
// 参数：
//   - path: 关卡配置文件路径（如 "data/levels/level_one.yaml"）
//
// 返回：
//   - *LevelConfig: 解析并验证后的关卡配置
//   - error: 读取、解析失败，或缺少必需节点（可用 errors.Is(err, ErrMissingNode) 判断）
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", path, err)
	}
	return cfg, nil
}

// LevelPath 返回关卡ID对应的配置文件路径
func LevelPath(levelID string) string {
	return "data/levels/" + levelID + ".yaml"
}

// ParseLevelConfig 从YAML数据解析关卡配置
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}
	applyLevelDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyLevelDefaults 为缺失的可选字段设置默认值
func applyLevelDefaults(cfg *LevelConfig) {
	if cfg.TileSize == 0 {
		cfg.TileSize = 32
	}
	if cfg.TileImage == "" {
		cfg.TileImage = "IMAGE_TILE_GROUND"
	}
}

// Validate 启动校验：角色节点必须存在且尺寸有效
func (c *LevelConfig) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tileSize must be positive, got %d", c.TileSize)
	}
	for _, name := range []string{NodeGhost, NodeHuman} {
		node, ok := c.Nodes[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingNode, name)
		}
		if node.Width <= 0 || node.Height <= 0 {
			return fmt.Errorf("node %q has invalid size %.0fx%.0f", name, node.Width, node.Height)
		}
	}
	return nil
}

// Columns 返回瓦片地图的列数（取最长一行）
func (c *LevelConfig) Columns() int {
	cols := 0
	for _, row := range c.Tiles {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	return cols
}

// Rows 返回瓦片地图的行数
func (c *LevelConfig) Rows() int {
	return len(c.Tiles)
}

// GroundTiles 返回所有地面瓦片位置（按行、列顺序）
func (c *LevelConfig) GroundTiles() []TileCell {
	var cells []TileCell
	for row, line := range c.Tiles {
		for col, ch := range []rune(line) {
			if ch == TileGround {
				cells = append(cells, TileCell{Col: col, Row: row})
			}
		}
	}
	return cells
}

// TileRect 返回瓦片在世界坐标中的左上角和边长
func (c *LevelConfig) TileRect(cell TileCell) (x, y, size float64) {
	size = float64(c.TileSize)
	return float64(cell.Col) * size, float64(cell.Row) * size, size
}

// String 输出瓦片地图（调试用）
func (c *LevelConfig) String() string {
	return fmt.Sprintf("%s (%dx%d tiles)\n%s", c.ID, c.Columns(), c.Rows(), strings.Join(c.Tiles, "\n"))
}
