package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定ID的关卡场景，避免循环依赖
type SceneFactory func(levelID string) (Scene, error)

// ErrNoSceneFactory 未设置场景工厂时加载关卡
var ErrNoSceneFactory = errors.New("scene factory not set")

// SceneManager 管理当前活动场景
//
// 同一时间只有一个场景被 Update；切换关卡时可以交叉淡入淡出，
// 淡出中的旧场景只参与绘制。
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	levelID      string

	// 交叉淡入淡出
	fadingScene  Scene
	fadeElapsed  float64
	fadeDuration float64
	fromImage    *ebiten.Image
	toImage      *ebiten.Image

	logger *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadLevel to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		logger: log.WithPrefix("SceneManager"),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 立即切换到指定场景（无过渡）
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.dispose(sm.currentScene)
	sm.currentScene = scene
	sm.fadingScene = nil
	sm.start(scene)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LevelID 返回当前关卡ID
func (sm *SceneManager) LevelID() string {
	return sm.levelID
}

// IsFading 是否正在交叉淡入淡出
func (sm *SceneManager) IsFading() bool {
	return sm.fadingScene != nil
}

// LoadLevel 加载指定ID的关卡场景（无过渡）
func (sm *SceneManager) LoadLevel(levelID string) error {
	return sm.loadLevel(levelID, 0)
}

// Restart 重新加载当前关卡，旧场景在 fadeSeconds 内淡出
func (sm *SceneManager) Restart(fadeSeconds float64) error {
	if sm.levelID == "" {
		return errors.New("no level loaded")
	}
	return sm.loadLevel(sm.levelID, fadeSeconds)
}

func (sm *SceneManager) loadLevel(levelID string, fadeSeconds float64) error {
	sm.logger.Info("loading level", "level", levelID, "fade", fadeSeconds)
	if sm.sceneFactory == nil {
		return ErrNoSceneFactory
	}

	scene, err := sm.sceneFactory(levelID)
	if err != nil {
		// 旧场景保持运行
		return fmt.Errorf("failed to create level %s: %w", levelID, err)
	}

	// 新场景启动前释放旧场景，旧场景的音频清理不会打断新场景
	old := sm.currentScene
	sm.dispose(old)

	sm.currentScene = scene
	sm.levelID = levelID
	if fadeSeconds > 0 && old != nil {
		sm.fadingScene = old
		sm.fadeElapsed = 0
		sm.fadeDuration = fadeSeconds
	} else {
		sm.fadingScene = nil
	}
	sm.start(scene)
	return nil
}

// dispose 释放实现了 Disposable 的场景
func (sm *SceneManager) dispose(scene Scene) {
	if d, ok := scene.(Disposable); ok {
		d.Dispose()
	}
}

// start 启动实现了 Starter 的场景
func (sm *SceneManager) start(scene Scene) {
	if st, ok := scene.(Starter); ok {
		st.Start()
	}
}

// fadeProgress 返回淡入进度（0~1）
func (sm *SceneManager) fadeProgress() float64 {
	if sm.fadeDuration <= 0 {
		return 1
	}
	return min(sm.fadeElapsed/sm.fadeDuration, 1)
}

// Update updates the currently active scene and advances the cross-fade.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if sm.fadingScene != nil {
		sm.fadeElapsed += deltaTime
		if sm.fadeProgress() >= 1 {
			sm.fadingScene = nil
		}
	}
}

// Draw renders the active scene; during a cross-fade both scenes are blended.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene == nil {
		return
	}
	if sm.fadingScene == nil {
		sm.currentScene.Draw(screen)
		return
	}

	sm.ensureBuffers(screen.Bounds().Dx(), screen.Bounds().Dy())
	sm.fromImage.Clear()
	sm.toImage.Clear()
	sm.fadingScene.Draw(sm.fromImage)
	sm.currentScene.Draw(sm.toImage)

	progress := sm.fadeProgress()
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(1 - progress))
	screen.DrawImage(sm.fromImage, op)

	op = &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(progress))
	screen.DrawImage(sm.toImage, op)
}

// ensureBuffers 按屏幕尺寸准备离屏缓冲
func (sm *SceneManager) ensureBuffers(w, h int) {
	if sm.fromImage != nil && sm.fromImage.Bounds().Dx() == w && sm.fromImage.Bounds().Dy() == h {
		return
	}
	if sm.fromImage != nil {
		sm.fromImage.Deallocate()
		sm.toImage.Deallocate()
	}
	sm.fromImage = ebiten.NewImage(w, h)
	sm.toImage = ebiten.NewImage(w, h)
}
