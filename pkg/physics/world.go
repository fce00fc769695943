package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"
)

// Body 物理体
// 坐标为左上角（与瓦片地图、精灵绘制使用同一坐标系）
type Body struct {
	Name  string
	Masks Masks

	X, Y          float64
	Width, Height float64
	VX, VY        float64

	// Dynamic 为 false 时物理体不参与积分（地面瓦片）
	Dynamic bool
	// AffectedByGravity 是否受重力影响
	AffectedByGravity bool
	// Friction 落地时水平速度的衰减系数（0~1）
	Friction float64
	// OnGround 本步是否站在阻挡物上
	OnGround bool

	// Data 挂载的业务对象
	Data any

	id    uint64
	shape *resolv.ConvexPolygon
}

// Category 返回物理体的类别位
func (b *Body) Category() CollisionTag {
	return b.Masks.Category
}

// syncShape 把物理体坐标写回 resolv 形状（形状位置为中心点）
func (b *Body) syncShape() {
	b.shape.SetPosition(b.X+b.Width/2, b.Y+b.Height/2)
}

// overlap 计算两个轴对齐包围盒在 X/Y 轴上的重叠量
func (b *Body) overlap(o *Body) (float64, float64) {
	ox := math.Min(b.X+b.Width, o.X+o.Width) - math.Max(b.X, o.X)
	oy := math.Min(b.Y+b.Height, o.Y+o.Height) - math.Max(b.Y, o.Y)
	return ox, oy
}

// Contact 接触事件：一对刚开始重叠的物理体
type Contact struct {
	A, B *Body
}

// ContactListener 接收接触开始事件
// 在 Step 内同步回调，回调返回前不会派发下一个事件
type ContactListener interface {
	BeginContact(c Contact)
}

// ContactListenerFunc 函数适配器
type ContactListenerFunc func(c Contact)

// BeginContact 实现 ContactListener
func (f ContactListenerFunc) BeginContact(c Contact) {
	f(c)
}

type pairKey struct {
	a, b *Body
}

func makePairKey(a, b *Body) pairKey {
	if a.id > b.id {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// World 物理世界
//
// 每步流程：
//  1. 动态物理体积分重力与速度
//  2. 与 Collision 掩码命中的物理体做分离（按最小重叠轴推出）
//  3. 检测 ContactTest 掩码命中的重叠对，仅在"开始接触"时派发事件
type World struct {
	space    *resolv.Space
	nextID   uint64
	bodies   []*Body
	byShape  map[resolv.IShape]*Body
	touching map[pairKey]bool
	gravity  float64
	listener ContactListener
	logger   *log.Logger
}

// NewWorld 创建物理世界
//
// 参数：
//   - width, height: 世界尺寸（像素）
//   - cellSize: resolv 空间网格单元尺寸
//   - gravity: 重力加速度（像素/秒²，向下为正）
func NewWorld(width, height, cellSize int, gravity float64) *World {
	if cellSize <= 0 {
		cellSize = 32
	}
	return &World{
		space:    resolv.NewSpace(width, height, cellSize, cellSize),
		byShape:  make(map[resolv.IShape]*Body),
		touching: make(map[pairKey]bool),
		gravity:  gravity,
		logger:   log.WithPrefix("Physics"),
	}
}

// SetContactListener 设置接触事件接收者
func (w *World) SetContactListener(l ContactListener) {
	w.listener = l
}

// Gravity 返回重力加速度
func (w *World) Gravity() float64 {
	return w.gravity
}

// Bodies 返回世界中的全部物理体
func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddBody 创建物理体并加入世界
func (w *World) AddBody(name string, masks Masks, x, y, width, height float64) *Body {
	w.nextID++
	b := &Body{
		id:                w.nextID,
		Name:              name,
		Masks:             masks,
		X:                 x,
		Y:                 y,
		Width:             width,
		Height:            height,
		Dynamic:           true,
		AffectedByGravity: true,
		shape:             resolv.NewRectangleTopLeft(x, y, width, height),
	}
	b.shape.Tags().Set(masks.Category.resolvTags())
	b.syncShape()
	w.space.Add(b.shape)
	w.bodies = append(w.bodies, b)
	w.byShape[b.shape] = b
	return b
}

// AddStaticBody 创建静态物理体（地面瓦片）
func (w *World) AddStaticBody(name string, masks Masks, x, y, width, height float64) *Body {
	b := w.AddBody(name, masks, x, y, width, height)
	b.Dynamic = false
	b.AffectedByGravity = false
	b.Friction = 1
	return b
}

// RemoveBody 从世界中移除物理体
func (w *World) RemoveBody(b *Body) {
	w.space.Remove(b.shape)
	delete(w.byShape, b.shape)
	for i, body := range w.bodies {
		if body == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for key := range w.touching {
		if key.a == b || key.b == b {
			delete(w.touching, key)
		}
	}
}

// Step 推进一个物理步
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if !b.Dynamic {
			continue
		}
		if b.AffectedByGravity {
			b.VY += w.gravity * dt
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.syncShape()
		w.resolveCollisions(b)
	}
	w.detectContacts()
}

// resolveCollisions 把物理体推出所有阻挡它的物理体
func (w *World) resolveCollisions(b *Body) {
	b.OnGround = false
	mask := b.Masks.Collision
	if mask == 0 {
		return
	}
	b.shape.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: b.shape.SelectTouchingCells(1).FilterShapes().ByTags(mask.resolvTags()),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			other, ok := w.byShape[set.OtherShape]
			if !ok || other == b || !blocks(b.Masks, other.Masks) {
				return true
			}
			w.separate(b, other)
			return true
		},
	})
}

// separate 沿最小重叠轴把 b 推出 other
func (w *World) separate(b, other *Body) {
	ox, oy := b.overlap(other)
	if ox <= 0 || oy <= 0 {
		return
	}
	if oy <= ox {
		if b.Y+b.Height/2 < other.Y+other.Height/2 {
			b.Y -= oy
			if b.VY > 0 {
				b.VY = 0
			}
			b.OnGround = true
			b.VX *= 1 - other.Friction
		} else {
			b.Y += oy
			if b.VY < 0 {
				b.VY = 0
			}
		}
	} else {
		if b.X+b.Width/2 < other.X+other.Width/2 {
			b.X -= ox
		} else {
			b.X += ox
		}
		b.VX = 0
	}
	b.syncShape()
}

// detectContacts 检测开始接触的物理体对并派发事件
func (w *World) detectContacts() {
	current := make(map[pairKey]bool)
	var begun []Contact

	for _, b := range w.bodies {
		if b.Masks.ContactTest == 0 {
			continue
		}
		b.shape.IntersectionTest(resolv.IntersectionTestSettings{
			TestAgainst: b.shape.SelectTouchingCells(1).FilterShapes().ByTags(b.Masks.ContactTest.resolvTags()),
			OnIntersect: func(set resolv.IntersectionSet) bool {
				other, ok := w.byShape[set.OtherShape]
				if !ok || other == b || !wantsContact(b.Masks, other.Masks) {
					return true
				}
				key := makePairKey(b, other)
				if current[key] {
					return true
				}
				current[key] = true
				if !w.touching[key] {
					begun = append(begun, Contact{A: key.a, B: key.b})
				}
				return true
			},
		})
	}
	w.touching = current

	if w.listener == nil {
		return
	}
	for _, c := range begun {
		w.logger.Debug("contact began", "a", c.A.Name, "b", c.B.Name)
		w.listener.BeginContact(c)
	}
}

// SetPosition 直接设置物理体位置（玩法层移动角色后回写）
func (b *Body) SetPosition(x, y float64) {
	b.X, b.Y = x, y
	if b.shape != nil {
		b.syncShape()
	}
}
