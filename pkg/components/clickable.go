package components

// ClickableComponent 标记实体可以被点击或触摸
// 可点击区域以 PositionComponent 为中心
type ClickableComponent struct {
	Node      string  // 命中时上报的节点名
	Width     float64 // 可点击区域的宽度(像素)
	Height    float64 // 可点击区域的高度(像素)
	IsEnabled bool    // 是否可以被点击
}
