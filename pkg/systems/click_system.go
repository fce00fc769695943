package systems

import (
	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
)

// ClickSystem 点击命中测试
type ClickSystem struct {
	em *ecs.EntityManager
}

// NewClickSystem 创建命中测试系统
func NewClickSystem(em *ecs.EntityManager) *ClickSystem {
	return &ClickSystem{em: em}
}

// NodesAt 返回坐标处所有启用的可点击节点名（按实体ID升序）
func (s *ClickSystem) NodesAt(x, y float64) []string {
	var nodes []string
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ClickableComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](s.em, id)
		if !click.IsEnabled {
			continue
		}
		if x >= pos.X-click.Width/2 && x <= pos.X+click.Width/2 &&
			y >= pos.Y-click.Height/2 && y <= pos.Y+click.Height/2 {
			nodes = append(nodes, click.Node)
		}
	}
	return nodes
}
