package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/decker502/ghostscare/pkg/config"
)

// fakeClip 记录播放状态的音频
type fakeClip struct {
	playing bool
	plays   int
	rewinds int
	volume  float64
}

func (c *fakeClip) Play() {
	c.playing = true
	c.plays++
}

func (c *fakeClip) Pause() { c.playing = false }

func (c *fakeClip) Rewind() error {
	c.rewinds++
	return nil
}

func (c *fakeClip) IsPlaying() bool { return c.playing }

func (c *fakeClip) SetVolume(volume float64) { c.volume = volume }

// fakeLoader 只认识预先登记的资源
type fakeLoader struct {
	clips map[clipKey]*fakeClip
	loads int
}

func newFakeLoader(ids ...string) *fakeLoader {
	l := &fakeLoader{clips: make(map[clipKey]*fakeClip)}
	for _, id := range ids {
		l.clips[clipKey{id, true}] = &fakeClip{}
		l.clips[clipKey{id, false}] = &fakeClip{}
	}
	return l
}

func (l *fakeLoader) LoadClip(id string, loop bool) (Clip, error) {
	l.loads++
	c, ok := l.clips[clipKey{id, loop}]
	if !ok {
		return nil, ErrResourceNotFound
	}
	return c, nil
}

func (l *fakeLoader) get(id string, loop bool) *fakeClip {
	return l.clips[clipKey{id, loop}]
}

func testAudioConfig() config.AudioConfig {
	return config.DefaultGameConfig().Audio
}

func TestPlayLoopReplacesCurrentLoop(t *testing.T) {
	loader := newFakeLoader("MUSIC_A", "MUSIC_B")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	if !am.PlayLoop("MUSIC_A") {
		t.Fatal("expected MUSIC_A to play")
	}
	a := loader.get("MUSIC_A", true)
	if !a.playing || a.volume != 0.7 {
		t.Errorf("loop should play at music volume, got playing=%v volume=%f", a.playing, a.volume)
	}

	am.PlayLoop("MUSIC_B")
	if a.playing {
		t.Error("previous loop should stop")
	}
	if !loader.get("MUSIC_B", true).playing {
		t.Error("new loop should play")
	}
	if am.CurrentLoop() != "MUSIC_B" {
		t.Errorf("expected current loop MUSIC_B, got %s", am.CurrentLoop())
	}
}

func TestPlayLoopSameClipDoesNotRestart(t *testing.T) {
	loader := newFakeLoader("MUSIC_A")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	am.PlayLoop("MUSIC_A")
	am.PlayLoop("MUSIC_A")

	if c := loader.get("MUSIC_A", true); c.rewinds != 1 {
		t.Errorf("playing loop should not be rewound again, rewinds=%d", c.rewinds)
	}
}

func TestPlayOnceSupersedesPreviousSound(t *testing.T) {
	loader := newFakeLoader("SOUND_1", "SOUND_2")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	am.PlayOnce("SOUND_1")
	am.PlayOnce("SOUND_2")

	if loader.get("SOUND_1", false).playing {
		t.Error("previous one-shot should stop")
	}
	s2 := loader.get("SOUND_2", false)
	if !s2.playing || s2.volume != 0.8 {
		t.Errorf("new sound should play at sound volume, got playing=%v volume=%f", s2.playing, s2.volume)
	}

	// 同一音效再次播放时从头开始
	am.PlayOnce("SOUND_2")
	if s2.rewinds != 2 || !s2.playing {
		t.Errorf("replaying a sound should rewind it, rewinds=%d", s2.rewinds)
	}
}

func TestOneShotDoesNotAffectLoop(t *testing.T) {
	loader := newFakeLoader("MUSIC", "SOUND")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	am.PlayLoop("MUSIC")
	am.PlayOnce("SOUND")

	if !loader.get("MUSIC", true).playing {
		t.Error("one-shot must not stop the loop channel")
	}
}

func TestMissingClipIsNoop(t *testing.T) {
	loader := newFakeLoader("SOUND_1")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	am.PlayOnce("SOUND_1")
	if am.PlayOnce("MISSING") {
		t.Error("missing clip should report failure")
	}
	if !loader.get("SOUND_1", false).playing {
		t.Error("failed request must not stop the current sound")
	}
	if am.PlayLoop("MISSING") {
		t.Error("missing loop should report failure")
	}
}

func TestClipsAreCached(t *testing.T) {
	loader := newFakeLoader("SOUND_1")
	am := NewAudioManager(loader, testAudioConfig(), nil)

	am.PlayOnce("SOUND_1")
	am.PlayOnce("SOUND_1")
	if loader.loads != 1 {
		t.Errorf("expected a single load, got %d", loader.loads)
	}
}

func TestPlayRandomFromIsUniformAndSeeded(t *testing.T) {
	ids := []string{"SOUND_HUMAN_1", "SOUND_HUMAN_2", "SOUND_HUMAN_3"}
	loader := newFakeLoader(ids...)
	am := NewAudioManager(loader, testAudioConfig(), rand.New(rand.NewPCG(1, 2)))

	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		if !am.PlayRandomFrom(ids) {
			t.Fatal("random sound should play")
		}
		counts[am.CurrentSound()]++
	}
	for _, id := range ids {
		if counts[id] < 800 || counts[id] > 1200 {
			t.Errorf("%s picked %d times out of 3000", id, counts[id])
		}
	}

	// 相同种子得到相同序列
	a := NewAudioManager(newFakeLoader(ids...), testAudioConfig(), rand.New(rand.NewPCG(9, 9)))
	b := NewAudioManager(newFakeLoader(ids...), testAudioConfig(), rand.New(rand.NewPCG(9, 9)))
	for i := 0; i < 20; i++ {
		a.PlayRandomFrom(ids)
		b.PlayRandomFrom(ids)
		if a.CurrentSound() != b.CurrentSound() {
			t.Fatalf("pick %d differs for the same seed", i)
		}
	}

	if am.PlayRandomFrom(nil) {
		t.Error("empty set should report failure")
	}
}

func TestMutedPlaysAtZeroVolume(t *testing.T) {
	cfg := testAudioConfig()
	cfg.Muted = true
	loader := newFakeLoader("MUSIC")
	am := NewAudioManager(loader, cfg, nil)

	if !am.PlayLoop("MUSIC") {
		t.Fatal("muted playback still succeeds")
	}
	c := loader.get("MUSIC", true)
	if c.volume != 0 {
		t.Errorf("muted volume should be 0, got %f", c.volume)
	}

	am.SetMuted(false)
	if c.volume != 0.7 {
		t.Errorf("unmuting should restore music volume, got %f", c.volume)
	}

	am.SetMusicVolume(2)
	if c.volume != 1 {
		t.Errorf("volume should be clamped to 1, got %f", c.volume)
	}
}

func TestStopAll(t *testing.T) {
	loader := newFakeLoader("MUSIC", "SOUND")
	am := NewAudioManager(loader, testAudioConfig(), nil)
	am.PlayLoop("MUSIC")
	am.PlayOnce("SOUND")

	am.StopAll()

	if loader.get("MUSIC", true).playing || loader.get("SOUND", false).playing {
		t.Error("all channels should be stopped")
	}
	if am.CurrentLoop() != "" {
		t.Error("current loop should be cleared")
	}
}

func TestResourceManagerLoadClipErrors(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.LoadClip("SOUND_HUMAN_1", false); err == nil {
		t.Error("expected error without audio context")
	}

	if _, err := rm.ResolvePath("SOUND_HUMAN_1"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}
