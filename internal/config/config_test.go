package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/flashboil/internal/integrators"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.RadiusMM = 2.5
	cfg.PressurePa = 5000
	cfg.Integrator = "rk45"
	cfg.Adaptive = true

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("pressure_pa: 2000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PressurePa != 2000 {
		t.Errorf("pressure_pa = %g, expected 2000", cfg.PressurePa)
	}
	if cfg.RadiusMM != Default().RadiusMM {
		t.Errorf("omitted radius_mm should keep default, got %g", cfg.RadiusMM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParamsConvertsUnits(t *testing.T) {
	cfg := Default()
	cfg.RadiusMM = 2.0

	p := cfg.Params()
	if math.Abs(p.InitialRadius-2e-3) > 1e-15 {
		t.Errorf("radius = %g m, expected 2e-3", p.InitialRadius)
	}
}

func TestPresetsAreRunnable(t *testing.T) {
	if len(PresetNames()) == 0 {
		t.Fatal("no presets registered")
	}
	for _, name := range PresetNames() {
		cfg, err := Preset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if err := cfg.Params().Validate(); err != nil {
			t.Errorf("preset %s has invalid params: %v", name, err)
		}
		if err := cfg.SimConfig().Validate(); err != nil {
			t.Errorf("preset %s has invalid sim config: %v", name, err)
		}
		if _, err := integrators.New(cfg.Integrator); err != nil {
			t.Errorf("preset %s names unknown integrator: %v", name, err)
		}
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := Preset("supersonic"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
