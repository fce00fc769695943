// Package utils 提供输入与平台相关的工具函数
package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// trackedKeys 键盘按键到字符码的映射
// 只有 'd'（右）和 'a'（左）对玩法有意义
var trackedKeys = []struct {
	key  ebiten.Key
	char rune
}{
	{ebiten.KeyD, 'd'},
	{ebiten.KeyA, 'a'},
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// JustPressedChars 返回本帧刚按下的按键字符
func JustPressedChars() string {
	var sb strings.Builder
	for _, k := range trackedKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			sb.WriteRune(k.char)
		}
	}
	return sb.String()
}

// JustReleasedChars 返回本帧刚松开的按键字符
func JustReleasedChars() string {
	var sb strings.Builder
	for _, k := range trackedKeys {
		if inpututil.IsKeyJustReleased(k.key) {
			sb.WriteRune(k.char)
		}
	}
	return sb.String()
}

// ============================================================================
// 触摸方向控制 - 移动端没有键盘，按住屏幕左/右半边等价于按住 'a'/'d'
// ============================================================================

// TouchKeys 把触摸转换成按键按下/松开事件
type TouchKeys struct {
	held string
}

// Update 读取当前触摸并返回本帧的按下、松开字符
func (tk *TouchKeys) Update(screenWidth int) (pressed, released string) {
	var sb strings.Builder
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		sb.WriteRune(touchChar(x, screenWidth))
	}
	return tk.apply(sb.String())
}

// apply 与上一帧按住的字符集合比较
func (tk *TouchKeys) apply(current string) (pressed, released string) {
	pressed, released = diffChars(tk.held, current)
	tk.held = current
	return pressed, released
}

// touchChar 触摸点在屏幕左半边时为 'a'，否则为 'd'
func touchChar(x, screenWidth int) rune {
	if x < screenWidth/2 {
		return 'a'
	}
	return 'd'
}

// diffChars 计算两个字符集合的差异（字符重复不影响结果）
func diffChars(prev, cur string) (pressed, released string) {
	var p, r strings.Builder
	for _, k := range trackedKeys {
		was := strings.ContainsRune(prev, k.char)
		is := strings.ContainsRune(cur, k.char)
		switch {
		case is && !was:
			p.WriteRune(k.char)
		case was && !is:
			r.WriteRune(k.char)
		}
	}
	return p.String(), r.String()
}

// ============================================================================
// 压力输入 - 使用手柄模拟扳机的行程模拟压感
// ============================================================================

// PressureStage 把压力值映射为离散阶段
//   - 0: 未按下
//   - 1: 轻按
//   - 2: 深按（达到 deepThreshold）
func PressureStage(pressure, deepThreshold float64) int {
	switch {
	case pressure <= 0:
		return 0
	case pressure >= deepThreshold:
		return 2
	default:
		return 1
	}
}

// PressureTracker 检测压力输入变化
type PressureTracker struct {
	deepThreshold float64
	pressure      float64
	stage         int
}

// NewPressureTracker 创建压力跟踪器
func NewPressureTracker(deepThreshold float64) *PressureTracker {
	return &PressureTracker{deepThreshold: deepThreshold}
}

// Update 读取手柄右扳机并返回压力是否变化
func (pt *PressureTracker) Update() (changed bool, pressure float64, stage int) {
	return pt.Apply(readTriggerPressure())
}

// Apply 记录新的压力值；与上一次相同时 changed 为 false
func (pt *PressureTracker) Apply(pressure float64) (changed bool, value float64, stage int) {
	if pressure < 0 {
		pressure = 0
	}
	if pressure > 1 {
		pressure = 1
	}
	stage = PressureStage(pressure, pt.deepThreshold)
	if pressure == pt.pressure && stage == pt.stage {
		return false, pressure, stage
	}
	pt.pressure, pt.stage = pressure, stage
	return true, pressure, stage
}

// readTriggerPressure 返回所有标准布局手柄中右扳机的最大行程
func readTriggerPressure() float64 {
	maxValue := 0.0
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		v := ebiten.StandardGamepadButtonValue(id, ebiten.StandardGamepadButtonFrontBottomRight)
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}
