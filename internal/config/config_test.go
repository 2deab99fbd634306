package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Mode != scene.Sun {
		t.Errorf("initial mode = %v, want sun", cfg.Derived.Mode)
	}
	if cfg.Derived.Preview != 3500*time.Millisecond {
		t.Errorf("preview = %v, want 3.5s", cfg.Derived.Preview)
	}
	if cfg.Audio.Source != "https://www.soundjay.com/nature/sounds/rain-01.mp3" {
		t.Errorf("source = %q", cfg.Audio.Source)
	}
	if cfg.Derived.RevealDelay != 200*time.Millisecond || cfg.UI.RevealThreshold != 0.15 {
		t.Errorf("reveal = %v / %v", cfg.Derived.RevealDelay, cfg.UI.RevealThreshold)
	}
	if len(cfg.Derived.Swatches) != len(cfg.Theme.Swatches) || len(cfg.Derived.Swatches) == 0 {
		t.Errorf("swatches = %v", cfg.Derived.Swatches)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, `
scene:
  initial_mode: Night
audio:
  source: /tmp/rain.wav
theme:
  swatches: ["#000000", "#ffffff"]
  primary: 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.Mode != scene.Night {
		t.Errorf("mode = %v", cfg.Derived.Mode)
	}
	if cfg.Audio.Source != "/tmp/rain.wav" {
		t.Errorf("source = %q", cfg.Audio.Source)
	}
	if cfg.Window.Width != 1024 || cfg.Audio.PreviewSeconds != 3.5 {
		t.Error("fields absent from the file lost their defaults")
	}
	if len(cfg.Derived.Swatches) != 2 || cfg.Derived.Swatches[1].R != 0xff {
		t.Errorf("swatches = %v", cfg.Derived.Swatches)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"mode", "scene: {initial_mode: dusk}", "initial_mode"},
		{"window", "window: {width: 0}", "window size"},
		{"preview", "audio: {preview_seconds: 0}", "preview_seconds"},
		{"swatch", `theme: {swatches: ["red"]}`, "swatch"},
		{"primary", "theme: {primary: 9}", "primary"},
		{"threshold", "ui: {reveal_threshold: 1.5}", "reveal_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Window.TPS = 0
	cfg.Audio.Source = ""
	err = cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "tps") || !strings.Contains(err.Error(), "source") {
		t.Errorf("err = %v, want both problems", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Scene.InitialMode = "snow"
	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("loading dump: %v", err)
	}
	if again.Derived.Mode != scene.Snow {
		t.Errorf("mode = %v, want snow", again.Derived.Mode)
	}
}
