package transcode

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/sonidolab/vocalib/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"`           // Mono PCM samples normalized to [-1, 1]
	SampleRate int           `json:"sample_rate"` // Native sample rate of the source
	Channels   int           `json:"channels"`    // Channel count of the source before mixdown
	Duration   time.Duration `json:"duration"`    // Duration at the native rate
}

// Decoder decodes audio files into mono float64 PCM.
// WAV is decoded via go-audio, MP3 via go-mp3.
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a new audio file decoder
func NewDecoder() *Decoder {
	return &Decoder{
		logger: logging.WithFields(logging.Fields{
			"component": "transcode_decoder",
		}),
	}
}

// DecodeFile decodes a WAV or MP3 file into mono PCM at its native rate.
// The container type is selected by file extension.
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return d.decodeWAV(path)
	case ".mp3":
		return d.decodeMP3(path)
	default:
		return nil, errors.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}

func (d *Decoder) decodeWAV(path string) (data *AudioData, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open wav file failed")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = multierr.Append(err, closeErr)
		}
	}()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, errors.New("not a valid wav file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "decode wav data failed")
	}
	if buf == nil || buf.Format == nil {
		return nil, errors.New("wav file has no PCM data")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, errors.Errorf("invalid channel count: %d", channels)
	}
	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate: %dHz", sampleRate)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth <= 0 {
		return nil, errors.New("unknown source bit depth")
	}
	normalizer := math.Pow(2, float64(bitDepth)-1)

	if len(buf.Data)%channels != 0 {
		return nil, errors.Errorf("wav data length (%d samples) is not divisible by channel count (%d)", len(buf.Data), channels)
	}
	frames := len(buf.Data) / channels

	pcm := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		base := i * channels
		for c := range channels {
			sum += float64(buf.Data[base+c]) / normalizer
		}
		pcm[i] = sum / float64(channels)
	}

	d.logger.Debug("decoded wav file", logging.Fields{
		"path":        path,
		"sample_rate": sampleRate,
		"channels":    channels,
		"frames":      frames,
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   frameDuration(frames, sampleRate),
	}, nil
}

func (d *Decoder) decodeMP3(path string) (data *AudioData, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mp3 file failed")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = multierr.Append(err, closeErr)
		}
	}()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return nil, errors.Wrap(err, "decode mp3 header failed")
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate: %dHz", sampleRate)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, errors.Wrap(err, "decode mp3 stream failed")
	}

	// go-mp3 always emits 16-bit little-endian stereo
	const bytesPerFrame = 4
	frames := len(raw) / bytesPerFrame

	pcm := make([]float64, frames)
	for i := range frames {
		base := i * bytesPerFrame
		left := int16(raw[base]) | int16(raw[base+1])<<8
		right := int16(raw[base+2]) | int16(raw[base+3])<<8
		pcm[i] = (float64(left) + float64(right)) / 2.0 / 32768.0
	}

	d.logger.Debug("decoded mp3 file", logging.Fields{
		"path":        path,
		"sample_rate": sampleRate,
		"frames":      frames,
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   2,
		Duration:   frameDuration(frames, sampleRate),
	}, nil
}

func frameDuration(frames, sampleRate int) time.Duration {
	return time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
}
