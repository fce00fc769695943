package entities

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/ghostscare/pkg/components"
	"github.com/decker502/ghostscare/pkg/ecs"
	"github.com/decker502/ghostscare/pkg/gameplay"
)

// 结束弹窗文本
const (
	GameOverText = "You Lose"
	RestartText  = "Tap to Restart"
)

// NewGameOverEntities 创建结束弹窗的两个标签
//
// "You Lose" 位于屏幕中心上方 50 像素，"Tap to Restart" 位于中心下方 50 像素，
// 后者可点击，节点名为 gameplay.NodeRestart。
//
// 返回：
//   - 标题标签实体ID
//   - 重新开始标签实体ID
func NewGameOverEntities(em *ecs.EntityManager, fonts ImageSource, windowWidth, windowHeight int) (ecs.EntityID, ecs.EntityID) {
	cx := float64(windowWidth) / 2
	cy := float64(windowHeight) / 2

	title := em.CreateEntity()
	ecs.AddComponent(em, title, &components.PositionComponent{X: cx, Y: cy - 50})
	ecs.AddComponent(em, title, &components.LabelComponent{
		Text:  GameOverText,
		Face:  fonts.DefaultFont(45),
		Color: color.RGBA{R: 255, A: 255},
		Z:     ZModal,
	})

	face := fonts.DefaultFont(30)
	w, h := text.Measure(RestartText, face, 0)

	restart := em.CreateEntity()
	ecs.AddComponent(em, restart, &components.PositionComponent{X: cx, Y: cy + 50})
	ecs.AddComponent(em, restart, &components.LabelComponent{
		Text:  RestartText,
		Face:  face,
		Color: color.White,
		Z:     ZModal,
	})
	ecs.AddComponent(em, restart, &components.ClickableComponent{
		Node:      gameplay.NodeRestart,
		Width:     w,
		Height:    h,
		IsEnabled: true,
	})
	return title, restart
}
