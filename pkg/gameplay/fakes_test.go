package gameplay

import (
	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/sequence"
)

// fakeSound 记录播放请求的音效服务
type fakeSound struct {
	fail  bool
	loops []string
	once  []string
}

func (f *fakeSound) PlayLoop(id string) bool {
	f.loops = append(f.loops, id)
	return !f.fail
}

func (f *fakeSound) PlayOnce(id string) bool {
	f.once = append(f.once, id)
	return !f.fail
}

func (f *fakeSound) PlayRandomFrom(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	return f.PlayOnce(ids[0])
}

// fakePresenter 记录界面操作次数
type fakePresenter struct {
	gameOver int
	restarts int
}

func (f *fakePresenter) ShowGameOver() { f.gameOver++ }

func (f *fakePresenter) Restart() { f.restarts++ }

// fixture 一局测试用的完整装配
type fixture struct {
	ctrl      *Controller
	runner    *sequence.Runner
	sound     *fakeSound
	presenter *fakePresenter
	ghost     *Actor
	human     *Actor
}

func newFixture() *fixture {
	cfg := config.DefaultGameConfig()
	f := &fixture{
		runner:    sequence.NewRunner(),
		sound:     &fakeSound{},
		presenter: &fakePresenter{},
		ghost:     NewActor(RoleGhost, 100, 400, 48, 64),
		human:     NewActor(RoleHuman, 600, 400, 48, 96),
	}
	f.ctrl = NewController(f.ghost, f.human, f.runner, f.sound, f.presenter, NewSettings(cfg))
	return f
}

// advance 以固定帧长推进序列调度器
func (f *fixture) advance(seconds, step float64) {
	for t := 0.0; t < seconds-1e-9; t += step {
		f.runner.Update(step)
	}
}
