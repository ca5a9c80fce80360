package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSizeMode_IsValid(t *testing.T) {
	for _, m := range []SizeMode{SizeLOC, SizeBytes, SizeFiles, SizeComplexity} {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if SizeMode("area").IsValid() {
		t.Error("expected unknown size mode to be invalid")
	}
}

func TestParseSizeMode_Fallback(t *testing.T) {
	if got := ParseSizeMode("bytes"); got != SizeBytes {
		t.Errorf("expected bytes, got %q", got)
	}
	if got := ParseSizeMode("bogus"); got != SizeLOC {
		t.Errorf("expected fallback to loc, got %q", got)
	}
}

func TestParseColorMode_Fallback(t *testing.T) {
	if got := ParseColorMode("age"); got != ColorByAge {
		t.Errorf("expected age, got %q", got)
	}
	if got := ParseColorMode(""); got != ColorByLanguage {
		t.Errorf("expected fallback to language, got %q", got)
	}
}

func TestNormalized_ClampsDepth(t *testing.T) {
	cfg := Config{MaxNestingDepth: -3}.Normalized()
	if cfg.MaxNestingDepth != 1 {
		t.Errorf("expected depth clamped to 1, got %d", cfg.MaxNestingDepth)
	}
	if cfg.SizeMode != SizeLOC || cfg.ColorMode != ColorByLanguage {
		t.Errorf("expected default modes, got %q/%q", cfg.SizeMode, cfg.ColorMode)
	}
	if cfg.LabelMinWidth <= 0 || cfg.LabelHeight <= 0 {
		t.Error("expected label dimensions defaulted")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reposcope.yaml")
	data := "max_depth: 2\nsize_mode: files\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxNestingDepth != 2 {
		t.Errorf("expected depth 2, got %d", cfg.MaxNestingDepth)
	}
	if cfg.SizeMode != SizeFiles {
		t.Errorf("expected files size mode, got %q", cfg.SizeMode)
	}
	// Fields the file omits keep their defaults.
	if cfg.ColorMode != ColorByLanguage {
		t.Errorf("expected default color mode, got %q", cfg.ColorMode)
	}
	if cfg.LabelHeight != DefaultConfig().LabelHeight {
		t.Errorf("expected default label height, got %v", cfg.LabelHeight)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_depth: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed config")
	}
}
