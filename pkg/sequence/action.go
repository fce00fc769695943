// Package sequence 实现可中断的定时动作序列
//
// 一个 Sequence 由若干 Action 顺序组成，每个 Action 有持续时间：
//   - Wait: 只占用时间
//   - Do: 瞬时执行回调
//   - MoveBy: 在持续时间内按比例把位移分摊到每一帧
//
// Runner 以"键"（通常是角色名）管理正在运行的序列实例，
// 由游戏主循环每帧调用 Update(dt) 推进，不使用 goroutine 或阻塞等待。
package sequence

// Action 序列中的单个步骤
type Action struct {
	// Name 调试用名称
	Name string
	// Duration 持续时间（秒），0 表示瞬时动作
	Duration float64
	// OnStart 步骤开始时调用（在本步骤持续时间开始计时之前）
	OnStart func()
	// OnProgress 每次推进时调用，参数为本次推进覆盖的进度比例（0~1 的增量）
	OnProgress func(fraction float64)
}

// Wait 创建等待动作
func Wait(seconds float64) Action {
	return Action{Name: "wait", Duration: seconds}
}

// Do 创建瞬时动作
func Do(name string, fn func()) Action {
	return Action{Name: name, OnStart: fn}
}

// MoveBy 创建位移动作：在 seconds 内累计调用 apply，使总位移等于 (dx, dy)
// seconds 为 0 时一次性应用全部位移
func MoveBy(dx, dy, seconds float64, apply func(dx, dy float64)) Action {
	a := Action{Name: "moveBy", Duration: seconds}
	if seconds <= 0 {
		a.OnStart = func() { apply(dx, dy) }
		return a
	}
	a.OnProgress = func(fraction float64) {
		apply(dx*fraction, dy*fraction)
	}
	return a
}

// Sequence 动作序列
type Sequence struct {
	// Name 调试用名称
	Name    string
	Actions []Action
	// Repeat 为 true 时序列执行完毕后从头开始（永久循环）
	Repeat bool
	// Protected 为 true 时 Runner.Cancel 不会中断该序列
	Protected bool
}

// TotalDuration 返回单轮序列的总时长
func (s Sequence) TotalDuration() float64 {
	total := 0.0
	for _, a := range s.Actions {
		total += a.Duration
	}
	return total
}
