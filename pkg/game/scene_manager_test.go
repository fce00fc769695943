package game

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeScene 记录调用次数的场景
type fakeScene struct {
	levelID  string
	updates  int
	lastDt   float64
	draws    int
	disposed int
	started  int
	// log 与其他场景共享，记录生命周期顺序
	log *[]string
}

func (s *fakeScene) Update(deltaTime float64) {
	s.updates++
	s.lastDt = deltaTime
}

func (s *fakeScene) Draw(screen *ebiten.Image) { s.draws++ }

func (s *fakeScene) Dispose() {
	s.disposed++
	s.record("dispose")
}

func (s *fakeScene) Start() {
	s.started++
	s.record("start")
}

func (s *fakeScene) record(event string) {
	if s.log != nil {
		*s.log = append(*s.log, s.levelID+":"+event)
	}
}

func TestSceneManagerStartsEmpty(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil || sm.LevelID() != "" || sm.IsFading() {
		t.Error("new manager should have no scene, no level and no fade")
	}
	// 没有场景时更新和绘制都是空操作
	sm.Update(1.0 / 60)
	sm.Draw(ebiten.NewImage(16, 16))
}

func TestSceneManagerForwardsToCurrentScene(t *testing.T) {
	sm := NewSceneManager()
	s := &fakeScene{}
	sm.SwitchTo(s)

	sm.Update(0.02)
	sm.Draw(ebiten.NewImage(16, 16))

	if s.updates != 1 || s.lastDt != 0.02 {
		t.Errorf("expected one update with dt 0.02, got %d updates dt %.3f", s.updates, s.lastDt)
	}
	if s.draws != 1 {
		t.Errorf("expected one draw, got %d", s.draws)
	}
}

func TestSwitchToDisposesPreviousScene(t *testing.T) {
	sm := NewSceneManager()
	first, second := &fakeScene{}, &fakeScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(second)
	sm.Update(1.0 / 60)

	if first.disposed != 1 {
		t.Errorf("previous scene should be disposed once, got %d", first.disposed)
	}
	if first.updates != 0 || second.updates != 1 {
		t.Errorf("only the current scene updates: first=%d second=%d", first.updates, second.updates)
	}
	if sm.IsFading() {
		t.Error("SwitchTo has no transition")
	}
	if first.started != 1 || second.started != 1 {
		t.Errorf("each scene should start once: first=%d second=%d", first.started, second.started)
	}
}

// sceneRecorder 记录工厂创建的全部场景
type sceneRecorder struct {
	scenes []*fakeScene
	fail   bool
}

func (r *sceneRecorder) factory(levelID string) (Scene, error) {
	if r.fail {
		return nil, errors.New("boom")
	}
	s := &fakeScene{levelID: levelID}
	r.scenes = append(r.scenes, s)
	return s, nil
}

func TestSceneManagerLoadLevelWithoutFactory(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.LoadLevel("level_one"); !errors.Is(err, ErrNoSceneFactory) {
		t.Errorf("expected ErrNoSceneFactory, got %v", err)
	}
}

func TestSceneManagerLoadLevel(t *testing.T) {
	sm := NewSceneManager()
	rec := &sceneRecorder{}
	sm.SetSceneFactory(rec.factory)

	if err := sm.LoadLevel("level_one"); err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if sm.GetCurrentScene() != rec.scenes[0] {
		t.Error("loaded scene should be current")
	}
	if sm.LevelID() != "level_one" {
		t.Errorf("expected level_one, got %s", sm.LevelID())
	}
	if sm.IsFading() {
		t.Error("initial load should not fade")
	}
}

func TestSceneManagerRestartCrossFades(t *testing.T) {
	sm := NewSceneManager()
	rec := &sceneRecorder{}
	sm.SetSceneFactory(rec.factory)
	if err := sm.LoadLevel("level_one"); err != nil {
		t.Fatal(err)
	}

	if err := sm.Restart(1.0); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if len(rec.scenes) != 2 {
		t.Fatalf("expected a fresh scene, got %d scenes", len(rec.scenes))
	}
	oldScene, newScene := rec.scenes[0], rec.scenes[1]
	if oldScene.disposed != 1 {
		t.Errorf("old scene should be disposed once, got %d", oldScene.disposed)
	}
	if newScene.levelID != "level_one" {
		t.Errorf("restart should reload the same level, got %s", newScene.levelID)
	}
	if !sm.IsFading() {
		t.Fatal("restart should cross-fade")
	}

	// 淡出中只更新新场景
	for i := 0; i < 30; i++ {
		sm.Update(1.0 / 60)
	}
	if oldScene.updates != 0 {
		t.Errorf("fading scene must not be updated, got %d", oldScene.updates)
	}
	if newScene.updates != 30 {
		t.Errorf("expected 30 updates on new scene, got %d", newScene.updates)
	}
	if !sm.IsFading() {
		t.Error("fade should still run after 0.5s")
	}

	for i := 0; i < 31; i++ {
		sm.Update(1.0 / 60)
	}
	if sm.IsFading() {
		t.Error("fade should finish after 1s")
	}
}

func TestSceneManagerRestartWithoutLevel(t *testing.T) {
	sm := NewSceneManager()
	sm.SetSceneFactory((&sceneRecorder{}).factory)
	if err := sm.Restart(1); err == nil {
		t.Error("restart without a loaded level should fail")
	}
}

func TestSceneManagerFactoryError(t *testing.T) {
	sm := NewSceneManager()
	rec := &sceneRecorder{}
	sm.SetSceneFactory(rec.factory)
	if err := sm.LoadLevel("level_one"); err != nil {
		t.Fatal(err)
	}

	rec.fail = true
	if err := sm.Restart(1); err == nil {
		t.Fatal("expected factory error")
	}
	if sm.GetCurrentScene() != rec.scenes[0] {
		t.Error("current scene should be kept when the factory fails")
	}
	// 旧场景未被释放，仍可继续运行
	if rec.scenes[0].disposed != 0 {
		t.Errorf("old scene must not be disposed on factory error, got %d", rec.scenes[0].disposed)
	}
	sm.Update(1.0 / 60)
	if rec.scenes[0].updates != 1 {
		t.Errorf("old scene should keep updating, got %d", rec.scenes[0].updates)
	}
}

func TestSceneManagerRestartLifecycleOrder(t *testing.T) {
	var events []string
	sm := NewSceneManager()
	n := 0
	sm.SetSceneFactory(func(levelID string) (Scene, error) {
		n++
		id := fmt.Sprintf("%s#%d", levelID, n)
		events = append(events, id+":create")
		return &fakeScene{levelID: id, log: &events}, nil
	})

	if err := sm.LoadLevel("level_one"); err != nil {
		t.Fatal(err)
	}
	if err := sm.Restart(1); err != nil {
		t.Fatal(err)
	}

	// 新场景创建成功后才释放旧场景，旧场景释放后新场景才启动
	want := []string{
		"level_one#1:create", "level_one#1:start",
		"level_one#2:create", "level_one#1:dispose", "level_one#2:start",
	}
	if !slices.Equal(events, want) {
		t.Errorf("lifecycle order = %v, want %v", events, want)
	}
}
