package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/decker502/ghostscare/pkg/config"
)

// Clip 可播放的音频（*audio.Player 满足该接口）
type Clip interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// ClipLoader 按资源ID创建音频
type ClipLoader interface {
	LoadClip(id string, loop bool) (Clip, error)
}

// clipKey 缓存键：同一资源的循环版和单次版是不同的播放器
type clipKey struct {
	id   string
	loop bool
}

// AudioManager 音频管理器，实现玩法层的音效服务
//
// 两个通道：
//   - 循环通道：背景音乐，新的循环替换当前循环
//   - 音效通道：一次性音效，新音效立即取代正在播放的音效（不排队）
//
// 找不到或无法解码的音频只记录警告，对应的播放请求返回 false。
type AudioManager struct {
	loader ClipLoader
	rng    *rand.Rand
	clips  map[clipKey]Clip

	currentLoop   Clip
	currentLoopID string
	currentOnce   Clip
	currentOnceID string

	musicVolume float64
	soundVolume float64
	muted       bool

	logger *log.Logger
}

// NewAudioManager 创建音频管理器
// rng 用于 PlayRandomFrom，为 nil 时使用随机种子
func NewAudioManager(loader ClipLoader, cfg config.AudioConfig, rng *rand.Rand) *AudioManager {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AudioManager{
		loader:      loader,
		rng:         rng,
		clips:       make(map[clipKey]Clip),
		musicVolume: cfg.MusicVolume,
		soundVolume: cfg.SoundVolume,
		muted:       cfg.Muted,
		logger:      log.WithPrefix("AudioManager"),
	}
}

// PlayLoop 播放循环音频，替换当前循环
// 同一音频已在播放时不重新开始
func (am *AudioManager) PlayLoop(id string) bool {
	if am.currentLoopID == id && am.currentLoop != nil && am.currentLoop.IsPlaying() {
		return true
	}

	clip := am.clip(id, true)
	if clip == nil {
		return false
	}
	am.StopLoop()

	am.start(clip, id, am.volume(am.musicVolume))
	am.currentLoop = clip
	am.currentLoopID = id
	am.logger.Debug("playing loop", "id", id, "volume", am.volume(am.musicVolume))
	return true
}

// PlayOnce 播放一次性音效，正在播放的音效立即停止
func (am *AudioManager) PlayOnce(id string) bool {
	clip := am.clip(id, false)
	if clip == nil {
		return false
	}
	if am.currentOnce != nil && am.currentOnce != clip {
		am.currentOnce.Pause()
	}

	am.start(clip, id, am.volume(am.soundVolume))
	am.currentOnce = clip
	am.currentOnceID = id
	am.logger.Debug("playing sound", "id", id)
	return true
}

// PlayRandomFrom 从 ids 中均匀随机选择一个音效播放
func (am *AudioManager) PlayRandomFrom(ids []string) bool {
	if len(ids) == 0 {
		am.logger.Warn("no sounds to choose from")
		return false
	}
	return am.PlayOnce(ids[am.rng.IntN(len(ids))])
}

// StopLoop 停止当前循环
func (am *AudioManager) StopLoop() {
	if am.currentLoop != nil {
		am.currentLoop.Pause()
	}
	am.currentLoop = nil
	am.currentLoopID = ""
}

// StopAll 停止全部通道（场景销毁时调用）
func (am *AudioManager) StopAll() {
	am.StopLoop()
	if am.currentOnce != nil {
		am.currentOnce.Pause()
	}
	am.currentOnce = nil
	am.currentOnceID = ""
}

// CurrentLoop 返回当前循环音频ID
func (am *AudioManager) CurrentLoop() string {
	return am.currentLoopID
}

// CurrentSound 返回最近一次播放的音效ID
func (am *AudioManager) CurrentSound() string {
	return am.currentOnceID
}

// SetMusicVolume 设置音乐音量，立即作用于当前循环
func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = clampVolume(volume)
	if am.currentLoop != nil {
		am.currentLoop.SetVolume(am.volume(am.musicVolume))
	}
}

// SetSoundVolume 设置音效音量，作用于之后播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = clampVolume(volume)
}

// SetMuted 静音开关，静音时音频照常播放但音量为 0
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if am.currentLoop != nil {
		am.currentLoop.SetVolume(am.volume(am.musicVolume))
	}
}

// clip 获取或加载音频，失败时记录警告并返回 nil
func (am *AudioManager) clip(id string, loop bool) Clip {
	key := clipKey{id: id, loop: loop}
	if c, ok := am.clips[key]; ok {
		return c
	}
	c, err := am.loader.LoadClip(id, loop)
	if err != nil {
		am.logger.Warn("failed to load audio", "id", id, "err", err)
		return nil
	}
	am.clips[key] = c
	return c
}

// start 从头播放
func (am *AudioManager) start(c Clip, id string, volume float64) {
	c.SetVolume(volume)
	if err := c.Rewind(); err != nil {
		am.logger.Warn("failed to rewind audio", "id", id, "err", err)
	}
	c.Play()
}

func (am *AudioManager) volume(v float64) float64 {
	if am.muted {
		return 0
	}
	return v
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
