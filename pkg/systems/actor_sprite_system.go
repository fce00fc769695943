package systems

import (
	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
)

// ActorSpriteSystem 把角色状态同步到精灵：位置、镜像、透明度、姿势贴图
type ActorSpriteSystem struct {
	em *ecs.EntityManager
}

// NewActorSpriteSystem 创建同步系统
func NewActorSpriteSystem(em *ecs.EntityManager) *ActorSpriteSystem {
	return &ActorSpriteSystem{em: em}
}

// Update 同步所有角色实体
func (s *ActorSpriteSystem) Update() {
	ids := ecs.GetEntitiesWith3[*components.ActorComponent, *components.PositionComponent, *components.SpriteComponent](s.em)
	for _, id := range ids {
		actorComp, _ := ecs.GetComponent[*components.ActorComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.em, id)

		actor := actorComp.Actor
		pos.X, pos.Y = actor.X, actor.Y
		sprite.FlipX = !actor.FacingRight
		sprite.Alpha = actor.Alpha
		if img, ok := actorComp.PoseImages[actor.Pose]; ok && img != nil {
			sprite.Image = img
		}
	}
}
