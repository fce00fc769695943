package systems

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
)

// RenderSystem 绘制所有精灵和文本标签
// 按 Z 升序绘制，Z 相同时按实体ID升序
type RenderSystem struct {
	em *ecs.EntityManager
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{em: em}
}

// drawItem 一个待绘制实体
type drawItem struct {
	id     ecs.EntityID
	z      int
	sprite *components.SpriteComponent
	label  *components.LabelComponent
	pos    *components.PositionComponent
}

// drawOrder 返回本帧的绘制顺序
func (s *RenderSystem) drawOrder() []drawItem {
	var items []drawItem
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.SpriteComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.em, id)
		items = append(items, drawItem{id: id, z: sprite.Z, sprite: sprite, pos: pos})
	}
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.LabelComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		label, _ := ecs.GetComponent[*components.LabelComponent](s.em, id)
		items = append(items, drawItem{id: id, z: label.Z, label: label, pos: pos})
	}
	slices.SortStableFunc(items, func(a, b drawItem) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return items
}

// Draw 绘制全部实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.drawOrder() {
		if item.sprite != nil {
			drawSprite(screen, item.sprite, item.pos)
		}
		if item.label != nil {
			drawLabel(screen, item.label, item.pos)
		}
	}
}

// drawSprite 把图片缩放到目标尺寸绘制在左上角坐标处
func drawSprite(screen *ebiten.Image, sprite *components.SpriteComponent, pos *components.PositionComponent) {
	if sprite.Image == nil || sprite.Alpha <= 0 {
		return
	}
	bounds := sprite.Image.Bounds()
	w, h := sprite.Width, sprite.Height
	if w <= 0 || h <= 0 {
		w, h = float64(bounds.Dx()), float64(bounds.Dy())
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	if sprite.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleAlpha(float32(sprite.Alpha))
	screen.DrawImage(sprite.Image, op)
}

// drawLabel 以坐标为中心绘制文本
func drawLabel(screen *ebiten.Image, label *components.LabelComponent, pos *components.PositionComponent) {
	if label.Face == nil || label.Text == "" {
		return
	}
	width, height := text.Measure(label.Text, label.Face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X-width/2, pos.Y-height/2)
	if label.Color != nil {
		op.ColorScale.ScaleWithColor(label.Color)
	}
	text.Draw(screen, label.Text, label.Face, op)
}
