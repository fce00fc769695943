package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
type SpriteComponent struct {
	Image *ebiten.Image

	// Width/Height 目标绘制尺寸，为 0 时使用图片原始尺寸
	Width, Height float64
	// FlipX 水平镜像（以绘制区域中心为轴）
	FlipX bool
	// Alpha 不透明度（0~1）
	Alpha float64
	// Z 绘制层级，数值大的后绘制
	Z int
}
