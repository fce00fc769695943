package entities

import (
	"testing"

	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/game"
	"github.com/decker502/ghostscare/pkg/gameplay"
	"github.com/decker502/ghostscare/pkg/physics"
)

// 未加载资源清单的资源管理器只会返回占位图
func newTestEnv() (*ecs.EntityManager, *physics.World, *game.ResourceManager) {
	return ecs.NewEntityManager(), physics.NewWorld(640, 480, 32, 980), game.NewResourceManager(nil)
}

func TestNewGroundTiles(t *testing.T) {
	em, world, rm := newTestEnv()
	level := &config.LevelConfig{
		TileSize:  32,
		TileImage: "IMAGE_TILE_GROUND",
		Tiles: []string{
			"....",
			"#..#",
			"####",
		},
	}

	ids := NewGroundTiles(em, world, rm, level)
	if len(ids) != 6 {
		t.Fatalf("expected 6 tiles, got %d", len(ids))
	}
	if len(world.Bodies()) != 6 {
		t.Errorf("expected 6 static bodies, got %d", len(world.Bodies()))
	}
	for _, b := range world.Bodies() {
		if b.Dynamic || b.Category() != physics.TagGround {
			t.Errorf("tile body %s should be static ground", b.Name)
		}
	}

	// 第二行最右侧的瓦片
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, ids[1])
	if !ok || pos.X != 96 || pos.Y != 32 {
		t.Errorf("tile position = %+v, want (96, 32)", pos)
	}
}

func TestNewHumanEntityLoadsAllPoses(t *testing.T) {
	em, world, rm := newTestEnv()
	human := gameplay.NewActor(gameplay.RoleHuman, 300, 200, 48, 96)

	id := NewHumanEntity(em, world, rm, human, "")

	actorComp, ok := ecs.GetComponent[*components.ActorComponent](em, id)
	if !ok {
		t.Fatal("human entity should have an ActorComponent")
	}
	if len(actorComp.PoseImages) != len(HumanPoseImages) {
		t.Errorf("expected %d pose images, got %d", len(HumanPoseImages), len(actorComp.PoseImages))
	}
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if sprite.Image != actorComp.PoseImages[gameplay.PoseIdle] {
		t.Error("human should start with the idle pose")
	}

	bodyComp, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if bodyComp.Body.Masks != physics.HumanMasks() {
		t.Errorf("human masks = %+v", bodyComp.Body.Masks)
	}
	if bodyComp.Body.Data != human {
		t.Error("body should carry the actor")
	}
}

func TestNewGhostEntity(t *testing.T) {
	em, world, rm := newTestEnv()
	ghost := gameplay.NewActor(gameplay.RoleGhost, 100, 200, 48, 64)
	ghost.Alpha = 0.5

	id := NewGhostEntity(em, world, rm, ghost, "")

	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if sprite.Image == nil || sprite.Alpha != 0.5 || sprite.Z != ZActors {
		t.Errorf("unexpected ghost sprite: %+v", sprite)
	}
	bodyComp, _ := ecs.GetComponent[*components.BodyComponent](em, id)
	if bodyComp.Body.Category() != physics.TagGhost {
		t.Errorf("ghost category = %s", bodyComp.Body.Category())
	}
}

func TestNewGameOverEntities(t *testing.T) {
	em := ecs.NewEntityManager()
	rm := game.NewResourceManager(nil)

	title, restart := NewGameOverEntities(em, rm, 1024, 768)

	titlePos, _ := ecs.GetComponent[*components.PositionComponent](em, title)
	restartPos, _ := ecs.GetComponent[*components.PositionComponent](em, restart)
	if titlePos.Y != 334 || restartPos.Y != 434 {
		t.Errorf("label Y = (%.0f, %.0f), want (334, 434)", titlePos.Y, restartPos.Y)
	}

	if _, ok := ecs.GetComponent[*components.ClickableComponent](em, title); ok {
		t.Error("title should not be clickable")
	}
	click, ok := ecs.GetComponent[*components.ClickableComponent](em, restart)
	if !ok || click.Node != gameplay.NodeRestart || !click.IsEnabled {
		t.Fatalf("restart label clickable = %+v", click)
	}
	if click.Width <= 0 || click.Height <= 0 {
		t.Errorf("clickable area should follow the text size, got %.1fx%.1f", click.Width, click.Height)
	}
}
