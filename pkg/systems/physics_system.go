package systems

import (
	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/physics"
)

// PhysicsSystem 在玩法层角色与物理体之间同步位置并推进物理世界
//
// 每帧：
//  1. 角色 → 物理体：玩法层移动过的位置、重力开关写入物理体
//  2. world.Step：积分、阻挡、派发接触事件
//  3. 物理体 → 角色：落地、被地面推出后的位置写回角色
type PhysicsSystem struct {
	em    *ecs.EntityManager
	world *physics.World
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(em *ecs.EntityManager, world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		em:    em,
		world: world,
	}
}

// Update 推进一个物理步
func (s *PhysicsSystem) Update(deltaTime float64) {
	ids := ecs.GetEntitiesWith2[*components.ActorComponent, *components.BodyComponent](s.em)

	for _, id := range ids {
		actorComp, _ := ecs.GetComponent[*components.ActorComponent](s.em, id)
		bodyComp, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		actor, body := actorComp.Actor, bodyComp.Body

		body.SetPosition(actor.X, actor.Y)
		body.AffectedByGravity = actor.GravityEnabled
		if !actor.GravityEnabled {
			body.VY = 0
		}
	}

	s.world.Step(deltaTime)

	for _, id := range ids {
		actorComp, _ := ecs.GetComponent[*components.ActorComponent](s.em, id)
		bodyComp, _ := ecs.GetComponent[*components.BodyComponent](s.em, id)
		actorComp.Actor.X = bodyComp.Body.X
		actorComp.Actor.Y = bodyComp.Body.Y
	}
}
