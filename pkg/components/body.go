package components

import "github.com/decker502/ghostscare/pkg/physics"

// BodyComponent 实体对应的物理体
type BodyComponent struct {
	Body *physics.Body
}
