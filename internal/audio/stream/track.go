// Package stream plays a looping ambience track through the beep speaker. The
// source is a remote URL or a local file, decoded as mp3, wav or flac.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/ambient-canvas/internal/audio"
)

const (
	levelRingSize = 4096
	// maxDownload bounds a remote source; ambience loops are short.
	maxDownload = 32 << 20
)

var (
	// ErrUnsupportedFormat is returned for sources that are not mp3, wav or flac.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("track closed")
)

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker initialises the shared speaker once, at the rate of the first
// decoded track, and returns the rate it runs at.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerRate != 0 {
		return speakerRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return 0, fmt.Errorf("initializing speaker: %w", err)
	}
	speakerRate = rate
	return rate, nil
}

// Track is an audio.Track backed by a fully buffered, endlessly looping beep
// stream: buffer -> loop -> resample -> volume -> level tap -> ctrl.
type Track struct {
	source string
	client *http.Client

	loadMu sync.Mutex

	mu     sync.Mutex
	seeker beep.StreamSeeker
	volume *effects.Volume
	tap    *levelTap
	ctrl   *beep.Ctrl
	gain   float64
	closed bool
}

var _ audio.Track = (*Track)(nil)

// New returns an unloaded track; nothing is fetched until Start.
func New(source string, client *http.Client) *Track {
	if client == nil {
		client = http.DefaultClient
	}
	return &Track{source: source, client: client, gain: 1}
}

// Opener adapts New to audio.Opener.
func Opener(client *http.Client) audio.Opener {
	return func(source string) audio.Track { return New(source, client) }
}

func (t *Track) Start(ctx context.Context) error {
	t.loadMu.Lock()
	t.mu.Lock()
	loaded, closed := t.ctrl != nil, t.closed
	t.mu.Unlock()
	if closed {
		t.loadMu.Unlock()
		return ErrClosed
	}
	if !loaded {
		if err := t.load(ctx); err != nil {
			t.loadMu.Unlock()
			return fmt.Errorf("loading %s: %w", t.source, err)
		}
	}
	t.loadMu.Unlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (t *Track) load(ctx context.Context) error {
	data, name, err := fetch(ctx, t.client, t.source)
	if err != nil {
		return err
	}
	decoded, format, err := decode(name, data)
	if err != nil {
		return err
	}
	defer decoded.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(decoded)
	if buffer.Len() == 0 {
		return fmt.Errorf("%s: no samples", name)
	}

	rate, err := initSpeaker(format.SampleRate)
	if err != nil {
		return err
	}

	seeker := buffer.Streamer(0, buffer.Len())
	var looped beep.Streamer = beep.Loop(-1, seeker)
	if format.SampleRate != rate {
		looped = beep.Resample(4, format.SampleRate, rate, looped)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.seeker = seeker
	t.volume = &effects.Volume{Streamer: looped, Base: 2}
	applyGain(t.volume, t.gain)
	t.tap = newLevelTap(t.volume, levelRingSize)
	t.ctrl = &beep.Ctrl{Streamer: t.tap, Paused: true}
	speaker.Play(t.ctrl)
	return nil
}

func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
	t.tap.reset()
}

func (t *Track) Rewind() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seeker == nil {
		return
	}
	speaker.Lock()
	_ = t.seeker.Seek(0) // position 0 is always in range of a non-empty buffer
	speaker.Unlock()
}

func (t *Track) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gain = v
	if t.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(t.volume, v)
	speaker.Unlock()
}

// Level reports the RMS of recently played samples.
func (t *Track) Level() float64 {
	t.mu.Lock()
	tap := t.tap
	t.mu.Unlock()
	if tap == nil {
		return 0
	}
	return tap.level()
}

// Close silences the track and detaches it from the speaker.
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.ctrl == nil {
		return nil
	}
	speaker.Lock()
	t.ctrl.Paused = true
	t.ctrl.Streamer = nil
	speaker.Unlock()
	return nil
}

// applyGain maps a linear gain onto effects.Volume, which works in powers of
// Base.
func applyGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(min(gain, 1))
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetch returns the source bytes and a name whose extension selects the decoder.
func fetch(ctx context.Context, client *http.Client, source string) ([]byte, string, error) {
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(source), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching %s: %s", source, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", source, err)
	}
	return data, remoteName(source, resp.Header.Get("Content-Type")), nil
}

// remoteName prefers the URL path extension and falls back to the content type.
func remoteName(source, contentType string) string {
	name := "remote"
	if u, err := url.Parse(source); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			name = base
		}
		if ext := path.Ext(name); ext != "" {
			return name
		}
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return name + ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return name + ".wav"
	case "audio/flac", "audio/x-flac":
		return name + ".flac"
	}
	return name
}

func decode(name string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return mp3.Decode(io.NopCloser(r))
	case ".wav":
		return wav.Decode(r)
	case ".flac":
		return flac.Decode(r)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}
