package entities

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/gameplay"
	"github.com/decker502/ghostscare/pkg/physics"
)

// 绘制层级
const (
	ZTiles  = 0
	ZActors = 1
	ZModal  = 100
)

// ImageGhost 幽灵贴图的默认资源ID
const ImageGhost = "IMAGE_GHOST"

// HumanPoseImages 人类各姿势贴图的资源ID
var HumanPoseImages = map[gameplay.Pose]string{
	gameplay.PoseIdle:      "IMAGE_HUMAN_IDLE",
	gameplay.PoseConfused:  "IMAGE_HUMAN_CONFUSED",
	gameplay.PoseCaught:    "IMAGE_HUMAN_CAUGHT",
	gameplay.PoseSurprised: "IMAGE_HUMAN_SURPRISED",
	gameplay.PoseFallen:    "IMAGE_HUMAN_FALL",
}

// 资源缺失时的占位色
var (
	ghostPlaceholder = color.RGBA{R: 220, G: 220, B: 255, A: 255}
	humanPlaceholder = color.RGBA{R: 230, G: 170, B: 120, A: 255}
	tilePlaceholder  = color.RGBA{R: 90, G: 70, B: 50, A: 255}
)

// ImageSource 实体工厂使用的图片和字体来源
// *game.ResourceManager 满足该接口
type ImageSource interface {
	ImageOrPlaceholder(resourceID string, width, height int, clr color.Color) *ebiten.Image
	DefaultFont(size float64) *text.GoTextFace
}

// NewGhostEntity 创建幽灵实体及其物理体
//
// 参数：
//   - imageID: 贴图资源ID，为空时使用 ImageGhost
func NewGhostEntity(em *ecs.EntityManager, world *physics.World, images ImageSource, actor *gameplay.Actor, imageID string) ecs.EntityID {
	if imageID == "" {
		imageID = ImageGhost
	}
	img := images.ImageOrPlaceholder(imageID, int(actor.Width), int(actor.Height), ghostPlaceholder)
	return newActorEntity(em, world, actor, physics.GhostMasks(), img, nil)
}

// NewHumanEntity 创建人类实体及其物理体，并加载全部姿势贴图
//
// 参数：
//   - imageID: 待机姿势的贴图资源ID，为空时使用 HumanPoseImages 中的默认值
func NewHumanEntity(em *ecs.EntityManager, world *physics.World, images ImageSource, actor *gameplay.Actor, imageID string) ecs.EntityID {
	w, h := int(actor.Width), int(actor.Height)
	poses := make(map[gameplay.Pose]*ebiten.Image, len(HumanPoseImages))
	for pose, id := range HumanPoseImages {
		if pose == gameplay.PoseIdle && imageID != "" {
			id = imageID
		}
		poses[pose] = images.ImageOrPlaceholder(id, w, h, humanPlaceholder)
	}
	return newActorEntity(em, world, actor, physics.HumanMasks(), poses[actor.Pose], poses)
}

func newActorEntity(
	em *ecs.EntityManager,
	world *physics.World,
	actor *gameplay.Actor,
	masks physics.Masks,
	img *ebiten.Image,
	poses map[gameplay.Pose]*ebiten.Image,
) ecs.EntityID {
	body := world.AddBody(actor.Role.String(), masks, actor.X, actor.Y, actor.Width, actor.Height)
	body.AffectedByGravity = actor.GravityEnabled
	body.Data = actor

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: actor.X, Y: actor.Y})
	ecs.AddComponent(em, id, &components.SpriteComponent{
		Image:  img,
		Width:  actor.Width,
		Height: actor.Height,
		FlipX:  !actor.FacingRight,
		Alpha:  actor.Alpha,
		Z:      ZActors,
	})
	ecs.AddComponent(em, id, &components.ActorComponent{Actor: actor, PoseImages: poses})
	ecs.AddComponent(em, id, &components.BodyComponent{Body: body})
	return id
}
