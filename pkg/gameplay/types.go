// Package gameplay 实现幽灵惊吓人类的核心玩法状态机
//
// Controller 持有一局游戏的 GameState 和两个角色（幽灵、人类），
// 由场景在同一个 goroutine 中同步调用它的事件处理方法：
//   - OnContact: 物理世界报告的接触
//   - OnTick: 每帧开始时调用，负责持续移动和第二种结束判定
//   - OnKeyDown / OnKeyUp: 方向键（'d' 向右，'a' 向左）
//   - OnPressureChange: 模拟压力输入
//   - OnTap: 点击命中的节点
//
// 人类的待机动画由 Director 构建，终局动画由 Controller 在接触时启动，
// 两者都运行在 sequence.Runner 上。
package gameplay

// Role 角色类型
type Role int

const (
	RoleGhost Role = iota
	RoleHuman
)

// String 返回角色名
func (r Role) String() string {
	switch r {
	case RoleGhost:
		return "ghost"
	case RoleHuman:
		return "human"
	default:
		return "unknown"
	}
}

// Pose 人类的贴图姿势
type Pose int

const (
	PoseIdle Pose = iota
	PoseConfused
	PoseCaught
	PoseSurprised
	PoseFallen
)

var poseNames = [...]string{"idle", "confused", "caught", "surprised", "fallen"}

// String 返回姿势名
func (p Pose) String() string {
	if p < 0 || int(p) >= len(poseNames) {
		return "unknown"
	}
	return poseNames[p]
}

// Actor 场景中的角色
// 坐标为左上角，与物理体一致
type Actor struct {
	Role          Role
	X, Y          float64
	Width, Height float64

	// FacingRight 为 false 时贴图水平镜像
	FacingRight bool
	// Alpha 不透明度（0~1）
	Alpha float64
	// Pose 当前贴图姿势（只对人类有意义）
	Pose Pose
	// GravityEnabled 物理体是否受重力影响
	GravityEnabled bool
}

// NewActor 创建面朝右、完全不透明、受重力影响的角色
func NewActor(role Role, x, y, width, height float64) *Actor {
	return &Actor{
		Role:           role,
		X:              x,
		Y:              y,
		Width:          width,
		Height:         height,
		FacingRight:    true,
		Alpha:          1,
		Pose:           PoseIdle,
		GravityEnabled: true,
	}
}

// Translate 平移角色
func (a *Actor) Translate(dx, dy float64) {
	a.X += dx
	a.Y += dy
}

// ControlMode 玩家是否还能操控幽灵
type ControlMode int

const (
	// ControlPlayer 玩家操控幽灵
	ControlPlayer ControlMode = iota
	// ControlLocked 控制已锁定（一局内只会进入一次，不会恢复）
	ControlLocked
)

// String 返回控制模式名
func (m ControlMode) String() string {
	if m == ControlLocked {
		return "locked"
	}
	return "player"
}

// GameState 一局游戏的状态标志
//
// 不变式：
//   - IsOver 为 true 时 ControlMode 必为 ControlLocked
//   - FacingRight 与 FacingLeft 恰有一个为 true
type GameState struct {
	ControlMode ControlMode
	IsOver      bool
	MovingRight bool
	MovingLeft  bool
	FacingRight bool
	FacingLeft  bool
}

// NewGameState 返回开局状态：玩家操控、面朝右
func NewGameState() GameState {
	return GameState{
		ControlMode: ControlPlayer,
		FacingRight: true,
	}
}

// Locked 控制是否已锁定
func (s GameState) Locked() bool {
	return s.ControlMode == ControlLocked
}

// face 更新朝向标志，保持两者互斥
func (s *GameState) face(right bool) {
	s.FacingRight = right
	s.FacingLeft = !right
}

// lock 锁定控制
func (s *GameState) lock() {
	s.ControlMode = ControlLocked
}
