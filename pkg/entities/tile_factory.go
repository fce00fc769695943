package entities

import (
	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/physics"
)

// NewGroundTiles 把瓦片地图转换为静态地面物理体和精灵
// 瓦片地图只在加载时读取一次
func NewGroundTiles(em *ecs.EntityManager, world *physics.World, images ImageSource, level *config.LevelConfig) []ecs.EntityID {
	size := level.TileSize
	img := images.ImageOrPlaceholder(level.TileImage, size, size, tilePlaceholder)

	cells := level.GroundTiles()
	ids := make([]ecs.EntityID, 0, len(cells))
	for _, cell := range cells {
		x, y, s := level.TileRect(cell)
		world.AddStaticBody("ground", physics.GroundMasks(), x, y, s, s)

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(em, id, &components.SpriteComponent{
			Image:  img,
			Width:  s,
			Height: s,
			Alpha:  1,
			Z:      ZTiles,
		})
		ids = append(ids, id)
	}
	return ids
}
