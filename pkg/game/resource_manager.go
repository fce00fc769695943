package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	auaudio "github.com/decker502/ghostscare/internal/audio"
	"github.com/decker502/ghostscare/pkg/embedded"
)

// ErrResourceNotFound 资源ID未在清单中定义
var ErrResourceNotFound = errors.New("resource not found")

// ResourceManager 统一加载并缓存图片、音频和字体
//
// 所有文件通过 embedded.Load 读取（嵌入文件优先，找不到时读磁盘）。
// 非线程安全：只在游戏主循环中使用。
//
// 用法：
//
//	rm := NewResourceManager(audio.NewContext(48000))
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImageByID("IMAGE_GHOST")
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image
	fontFaceCache map[string]*text.GoTextFace
	audioContext  *audio.Context

	config      *ResourceConfig
	resourceMap map[string]string // 资源ID -> 文件路径
	logger      *log.Logger
}

// NewResourceManager 创建资源管理器
// audioContext 为 nil 时所有音频加载都会失败（测试或无声环境）
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		fontFaceCache: make(map[string]*text.GoTextFace),
		audioContext:  audioContext,
		resourceMap:   make(map[string]string),
		logger:        log.WithPrefix("ResourceManager"),
	}
}

// LoadResourceConfig 加载资源清单
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("resource config %s: %w", configPath, err)
	}
	return rm.SetResourceConfig(cfg)
}

// SetResourceConfig 直接设置资源清单
func (rm *ResourceManager) SetResourceConfig(cfg *ResourceConfig) error {
	index, err := cfg.Index()
	if err != nil {
		return err
	}
	rm.config = cfg
	rm.resourceMap = index
	rm.logger.Debug("resource config loaded", "resources", len(index))
	return nil
}

// ResolvePath 返回资源ID对应的文件路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, error) {
	path, ok := rm.resourceMap[resourceID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrResourceNotFound, resourceID)
	}
	return path, nil
}

// LoadImage 加载并缓存图片
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[path]; ok {
		return cached, nil
	}

	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID 通过资源ID加载图片
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	path, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadImage(path)
}

// ImageOrPlaceholder 通过资源ID加载图片，失败时返回纯色占位图
// 加载失败只记录警告，场景照常运行
func (rm *ResourceManager) ImageOrPlaceholder(resourceID string, width, height int, clr color.Color) *ebiten.Image {
	img, err := rm.LoadImageByID(resourceID)
	if err == nil {
		return img
	}
	rm.logger.Warn("image unavailable, using placeholder", "id", resourceID, "err", err)

	key := fmt.Sprintf("placeholder:%s:%dx%d", resourceID, width, height)
	if cached, ok := rm.imageCache[key]; ok {
		return cached
	}
	placeholder := ebiten.NewImage(max(width, 1), max(height, 1))
	placeholder.Fill(clr)
	rm.imageCache[key] = placeholder
	return placeholder
}

// audioStream 解码后的音频流
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio 按扩展名解码音频（.mp3 / .ogg / .wav / .au）
// .au 会被重采样到 sampleRate，其余格式要求文件本身就是该采样率
func decodeAudio(path string, data []byte, sampleRate int) (audioStream, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, nil
	case ".au":
		s, err := auaudio.Decode(reader, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav, .au)", ext)
	}
}

// LoadClip 通过资源ID创建音频播放器，实现 ClipLoader
// loop 为 true 时音频无限循环（背景音乐）
func (rm *ResourceManager) LoadClip(resourceID string, loop bool) (Clip, error) {
	if rm.audioContext == nil {
		return nil, errors.New("audio context not available")
	}
	path, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	stream, err := decodeAudio(path, data, rm.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}
	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// LoadFont 加载 TTF/OTF 字体并按字号缓存
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cached, ok := rm.fontFaceCache[cacheKey]; ok {
		return cached, nil
	}

	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	face, err := newFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFont 返回内置 Go Regular 字体
func (rm *ResourceManager) DefaultFont(size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cached, ok := rm.fontFaceCache[cacheKey]; ok {
		return cached
	}
	face, err := newFace(goregular.TTF, size)
	if err != nil {
		// 内置字体数据固定，解析失败说明依赖损坏
		panic(fmt.Sprintf("goregular font: %v", err))
	}
	rm.fontFaceCache[cacheKey] = face
	return face
}

func newFace(data []byte, size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}
