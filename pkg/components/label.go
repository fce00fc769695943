package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LabelComponent 文本标签，以 PositionComponent 为中心绘制
type LabelComponent struct {
	Text  string
	Face  *text.GoTextFace
	Color color.Color
	Z     int
}
