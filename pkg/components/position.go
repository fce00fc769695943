package components

// PositionComponent 存储实体左上角的世界坐标
type PositionComponent struct {
	X, Y float64
}
