// Package audio 解码 Sun/NeXT 音频（.au）
//
// Ebitengine 的播放器只接受 16 位小端立体声 PCM，
// 因此解码结果统一转换为立体声并重采样到音频上下文的采样率。
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// .au 文件头（大端，至少 24 字节）
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auUnknownSize   = 0xffffffff
	auEncodingULaw  = 1
	auEncodingPCM16 = 3
)

// ErrUnsupportedEncoding 不支持的编码（只支持 μ-law 和 16 位线性 PCM）
var ErrUnsupportedEncoding = errors.New("unsupported au encoding")

// Stream 解码后的 PCM 流，满足 io.ReadSeeker 并提供 Length
type Stream struct {
	*bytes.Reader
	length int64
}

// Length 返回 PCM 数据字节数
func (s *Stream) Length() int64 {
	return s.length
}

// Decode 解码 .au 数据并输出 sampleRate 采样率的 16 位立体声 PCM
func Decode(r io.Reader, sampleRate int) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read au: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("au file too short: %d bytes", len(data))
	}

	var h auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("read au header: %w", err)
	}
	if h.Magic != auMagic {
		return nil, fmt.Errorf("invalid au magic 0x%08x", h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("unsupported au channel count %d", h.Channels)
	}
	if h.SampleRate == 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d -> %d", h.SampleRate, sampleRate)
	}
	if int(h.DataOffset) < auHeaderSize || int(h.DataOffset) > len(data) {
		return nil, fmt.Errorf("invalid au data offset %d (file size %d)", h.DataOffset, len(data))
	}

	body := data[h.DataOffset:]
	if h.DataSize != auUnknownSize && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	samples, err := decodeSamples(body, h.Encoding)
	if err != nil {
		return nil, err
	}
	stereo := toStereo(samples, int(h.Channels))
	stereo = resample(stereo, int(h.SampleRate), sampleRate)

	pcm := make([]byte, len(stereo)*2)
	for i, s := range stereo {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return &Stream{Reader: bytes.NewReader(pcm), length: int64(len(pcm))}, nil
}

// decodeSamples 把编码数据转换为交错的 16 位样本
func decodeSamples(body []byte, encoding uint32) ([]int16, error) {
	switch encoding {
	case auEncodingULaw:
		out := make([]int16, len(body))
		for i, b := range body {
			out[i] = ulawToLinear(b)
		}
		return out, nil
	case auEncodingPCM16:
		out := make([]int16, len(body)/2)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, encoding)
	}
}

// ulawToLinear G.711 μ-law 解码
func ulawToLinear(b byte) int16 {
	u := ^b
	t := (int(u&0x0f) << 3) + 0x84
	t <<= (u & 0x70) >> 4
	if u&0x80 != 0 {
		return int16(0x84 - t)
	}
	return int16(t - 0x84)
}

// toStereo 单声道样本复制到左右声道
func toStereo(samples []int16, channels int) []int16 {
	if channels == 2 {
		return samples[:len(samples)/2*2]
	}
	out := make([]int16, len(samples)*2)
	for i, s := range samples {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}

// resample 对交错立体声样本做线性插值重采样
func resample(stereo []int16, from, to int) []int16 {
	if from == to || len(stereo) == 0 {
		return stereo
	}
	frames := len(stereo) / 2
	outFrames := int(int64(frames) * int64(to) / int64(from))
	out := make([]int16, outFrames*2)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * float64(from) / float64(to)
		j := int(pos)
		frac := pos - float64(j)
		next := min(j+1, frames-1)
		for ch := 0; ch < 2; ch++ {
			a := float64(stereo[j*2+ch])
			b := float64(stereo[next*2+ch])
			out[i*2+ch] = int16(a + (b-a)*frac)
		}
	}
	return out
}
