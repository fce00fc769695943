package gameplay

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/ghostscare/pkg/config"
	"github.com/decker502/ghostscare/pkg/physics"
	"github.com/decker502/ghostscare/pkg/sequence"
)

func sequenceFiringAfter(seconds float64, fired *bool) sequence.Sequence {
	return sequence.Sequence{Actions: []sequence.Action{
		sequence.Wait(seconds),
		sequence.Do("fire", func() { *fired = true }),
	}}
}

func fixedWaitSettings(wait int) AmbientSettings {
	s := NewAmbientSettings(config.DefaultGameConfig())
	s.MinWait = wait
	s.MaxWait = wait
	return s
}

func TestRandomWaitWithinRange(t *testing.T) {
	settings := NewAmbientSettings(config.DefaultGameConfig())
	seen := map[int]bool{}

	for seed := uint64(0); seed < 200; seed++ {
		d := NewDirector(sequence.NewRunner(), &fakeSound{}, rand.New(rand.NewPCG(seed, seed)), settings)
		w := d.randomWait()
		if w < 1 || w > 5 {
			t.Fatalf("seed %d: wait %d out of [1,5]", seed, w)
		}
		seen[w] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected all waits 1..5 to appear, got %v", seen)
	}
}

func TestAmbientSequenceIsDeterministicForSeed(t *testing.T) {
	settings := NewAmbientSettings(config.DefaultGameConfig())
	a := NewDirector(sequence.NewRunner(), &fakeSound{}, rand.New(rand.NewPCG(3, 4)), settings)
	b := NewDirector(sequence.NewRunner(), &fakeSound{}, rand.New(rand.NewPCG(3, 4)), settings)

	human := NewActor(RoleHuman, 0, 0, 10, 10)
	if a.AmbientSequence(human).Actions[0].Duration != b.AmbientSequence(human).Actions[0].Duration {
		t.Error("same seed should produce the same first wait")
	}
}

func TestAmbientLoop(t *testing.T) {
	f := newFixture()
	d := NewDirector(f.runner, f.sound, nil, fixedWaitSettings(3))
	f.human.FacingRight = false
	d.Start(f.human)

	f.advance(2.5, 0.5)
	if f.human.FacingRight || len(f.sound.once) != 0 {
		t.Fatal("nothing should happen during the first wait")
	}

	// t=3: 朝右并播放人声
	f.advance(0.5, 0.5)
	if !f.human.FacingRight {
		t.Error("human should face right after first wait")
	}
	if len(f.sound.once) != 1 || f.sound.once[0] != "SOUND_HUMAN_1" {
		t.Errorf("expected ambient sound, got %v", f.sound.once)
	}
	if f.human.Pose != PoseConfused {
		t.Errorf("expected confused pose after sound, got %v", f.human.Pose)
	}

	// t=5: 朝左
	f.advance(2, 0.5)
	if f.human.FacingRight {
		t.Error("human should face left")
	}
	if f.human.Pose != PoseIdle {
		t.Errorf("expected idle pose, got %v", f.human.Pose)
	}

	// t=7: 朝右，随后开始下一轮
	f.advance(2, 0.5)
	if !f.human.FacingRight {
		t.Error("human should face right at the end of the round")
	}

	// t=10: 第二轮播放人声
	f.advance(3, 0.5)
	if len(f.sound.once) != 2 {
		t.Errorf("expected second ambient sound, got %d", len(f.sound.once))
	}
	if !f.runner.IsRunning(TrackHuman) {
		t.Error("ambient loop should keep running")
	}
}

func TestAmbientSoundFailureKeepsIdlePose(t *testing.T) {
	f := newFixture()
	f.sound.fail = true
	d := NewDirector(f.runner, f.sound, nil, fixedWaitSettings(1))
	d.Start(f.human)

	f.advance(1, 0.5)
	if f.human.Pose != PoseIdle {
		t.Errorf("failed playback should keep idle pose, got %v", f.human.Pose)
	}
	if !f.human.FacingRight {
		t.Error("human should still turn right")
	}
}

func TestContactCancelsAmbientMidWait(t *testing.T) {
	f := newFixture()
	d := NewDirector(f.runner, f.sound, nil, fixedWaitSettings(1))
	d.Start(f.human)

	// t=4: 已朝左，正在等待下一次朝右
	f.advance(4, 0.5)
	if f.human.FacingRight {
		t.Fatal("human should be facing left before contact")
	}

	f.ctrl.OnContact(physics.TagGhost, physics.TagHuman)

	for i := 0; i < 20; i++ {
		f.runner.Update(0.5)
		if f.human.FacingRight {
			t.Fatalf("stale ambient step ran after cancellation at %.1fs", float64(i+1)*0.5)
		}
	}
	if f.human.Pose != PoseFallen {
		t.Errorf("terminal sequence should end fallen, got %v", f.human.Pose)
	}
	if len(f.sound.once) != 2 {
		t.Errorf("expected one ambient and one surprised sound, got %v", f.sound.once)
	}
}

func TestHumanTurningLeftWhileGhostVisibleEndsGame(t *testing.T) {
	f := newFixture()
	d := NewDirector(f.runner, f.sound, nil, fixedWaitSettings(1))
	d.Start(f.human)

	// 幽灵一直现身，人类在 t=3 朝左
	f.ctrl.OnKeyDown(KeyRight)
	for i := 0; i < 8; i++ {
		f.ctrl.OnTick(0.5)
		f.runner.Update(0.5)
	}
	f.ctrl.OnTick(0.5)

	if !f.ctrl.State().IsOver {
		t.Fatal("game should be over once the human looks left")
	}
	if f.human.Pose != PoseCaught {
		t.Errorf("expected caught pose, got %v", f.human.Pose)
	}
	if f.runner.IsRunning(TrackHuman) {
		t.Error("ambient sequence should be cancelled")
	}
}
