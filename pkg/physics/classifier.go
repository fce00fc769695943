package physics

// ContactKind 接触事件分类结果
type ContactKind int

const (
	// ContactOther 与玩法无关的接触（地面、同类或其他组合）
	ContactOther ContactKind = iota
	// ContactGhostHuman 幽灵碰到人类
	ContactGhostHuman
)

// String 返回分类名
func (k ContactKind) String() string {
	if k == ContactGhostHuman {
		return "ghost-human"
	}
	return "other"
}

// Classify 根据两个物理体的类别位判断接触类型
// 参数顺序无关：Classify(a, b) == Classify(b, a)
func Classify(a, b CollisionTag) ContactKind {
	if (a == TagGhost && b == TagHuman) || (a == TagHuman && b == TagGhost) {
		return ContactGhostHuman
	}
	return ContactOther
}
