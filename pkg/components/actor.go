package components

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ghostscare/pkg/gameplay"
)

// ActorComponent 把玩法层角色绑定到实体
// 渲染前由 ActorSpriteSystem 把角色的位置、朝向、透明度和姿势同步到精灵
type ActorComponent struct {
	Actor *gameplay.Actor
	// PoseImages 各姿势的贴图；为空时始终使用 SpriteComponent 当前图片
	PoseImages map[gameplay.Pose]*ebiten.Image
}
