package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换时调用 Dispose 释放资源
//
// 调用时机：
//   - 重新开始关卡（新场景创建成功之后、启动之前释放旧场景，例如停止音频）
//   - 切换到其他场景
//
// 释放后的场景仍可能在淡出期间被 Draw，但不会再被 Update。
type Disposable interface {
	Dispose()
}

// Starter 是一个可选接口，场景成为当前场景时调用 Start
// 背景音乐等副作用放在这里，新场景创建失败时旧场景不受影响
type Starter interface {
	Start()
}
