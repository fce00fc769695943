package gameplay

import "github.com/decker502/ghostscare/pkg/physics"

// 方向键字符
const (
	KeyRight rune = 'd'
	KeyLeft  rune = 'a'
)

// NodeRestart 结束弹窗中"重新开始"标签的节点名
const NodeRestart = "restartLabel"

// 序列调度器中的角色键
const (
	TrackGhost = "ghost"
	TrackHuman = "human"
)

// Handler 场景向玩法层派发的全部事件
// 所有方法都在游戏主循环中同步调用，不阻塞
type Handler interface {
	OnContact(a, b physics.CollisionTag)
	OnTick(dt float64)
	OnKeyDown(key rune)
	OnKeyUp(key rune)
	OnPressureChange(pressure float64, stage int)
	OnTap(node string)
}

// SoundService 音效服务
// 找不到或无法解码的音频只记录日志，返回 false，不向调用方报错
type SoundService interface {
	// PlayLoop 播放循环音频，替换当前循环
	PlayLoop(id string) bool
	// PlayOnce 播放一次性音效，立即取代正在播放的音效
	PlayOnce(id string) bool
	// PlayRandomFrom 从 ids 中均匀随机选择一个，行为同 PlayOnce
	PlayRandomFrom(ids []string) bool
}

// Presenter 场景提供的界面操作
type Presenter interface {
	// ShowGameOver 显示结束弹窗
	ShowGameOver()
	// Restart 以淡入淡出重新加载当前关卡
	Restart()
}

// DispatchKeys 把一次按键事件携带的全部字符依次派发给 h
func DispatchKeys(h Handler, chars string, down bool) {
	for _, r := range chars {
		if down {
			h.OnKeyDown(r)
		} else {
			h.OnKeyUp(r)
		}
	}
}
