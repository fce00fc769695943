// Package physics 提供关卡使用的平台物理世界
//
// 物理体按位掩码分类（幽灵、地面、人类各占一位），
// 接触/碰撞判断全部基于按位与运算，不做类型检查。
// 宽相位查询和标签过滤交给 resolv 的空间网格完成。
package physics

import "github.com/solarlune/resolv"

// CollisionTag 碰撞类别位掩码
// 每个物理体有且仅有一个自身类别位，掩码字段可以组合多个位
type CollisionTag uint32

const (
	// TagGhost 玩家控制的幽灵
	TagGhost CollisionTag = 0b1
	// TagGround 由瓦片地图生成的静态地面
	TagGround CollisionTag = 0b10
	// TagHuman 被惊吓的人类
	TagHuman CollisionTag = 0b100
)

// Has 判断掩码中是否包含任一指定位
func (t CollisionTag) Has(other CollisionTag) bool {
	return t&other != 0
}

// String 返回可读的类别名（用于日志）
func (t CollisionTag) String() string {
	switch t {
	case TagGhost:
		return "ghost"
	case TagGround:
		return "ground"
	case TagHuman:
		return "human"
	case 0:
		return "none"
	default:
		return "mixed"
	}
}

// resolvTags 把类别位直接映射为 resolv 的标签位
func (t CollisionTag) resolvTags() resolv.Tags {
	return resolv.Tags(t)
}

// Masks 物理体的三组位掩码，在创建物理体时一次性设置
type Masks struct {
	Category    CollisionTag // 自身类别
	ContactTest CollisionTag // 与哪些类别产生接触事件
	Collision   CollisionTag // 与哪些类别发生物理阻挡
}

// GhostMasks 幽灵：只与地面接触和碰撞
func GhostMasks() Masks {
	return Masks{
		Category:    TagGhost,
		ContactTest: TagGround,
		Collision:   TagGround,
	}
}

// HumanMasks 人类：与地面和幽灵产生接触，只被地面阻挡
// 幽灵可以穿过人类，但两者重叠时仍会触发接触事件
func HumanMasks() Masks {
	return Masks{
		Category:    TagHuman,
		ContactTest: TagGround | TagGhost,
		Collision:   TagGround,
	}
}

// GroundMasks 地面瓦片：阻挡幽灵和人类
func GroundMasks() Masks {
	return Masks{
		Category:    TagGround,
		ContactTest: TagGhost | TagHuman,
		Collision:   TagGhost | TagHuman,
	}
}

// wantsContact 两个物理体是否应产生接触事件（任一方测试另一方即可）
func wantsContact(a, b Masks) bool {
	return a.ContactTest.Has(b.Category) || b.ContactTest.Has(a.Category)
}

// blocks 判断 other 是否会阻挡 body 的移动
func blocks(body, other Masks) bool {
	return body.Collision.Has(other.Category)
}
