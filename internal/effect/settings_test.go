package effect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearFolioEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FOLIO_IMAGE", "FOLIO_PARTICLES", "FOLIO_REDUCED_MOTION", "FOLIO_MUTE", "FOLIO_SEED"} {
		t.Setenv(k, "")
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	clearFolioEnv(t)
	path := filepath.Join(t.TempDir(), "folio.json")
	data := `{"particles":"gpu","reducedMotion":true,"seed":77,"image":"me.png"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.ParticleMode != FieldGPU || s.ParticleCount != GPUParticleCount {
		t.Fatalf("particles %q x%d", s.ParticleMode, s.ParticleCount)
	}
	if !s.ReducedMotion || s.Seed != 77 || s.ImagePath != "me.png" {
		t.Fatalf("unexpected settings %+v", s)
	}
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	clearFolioEnv(t)
	t.Setenv("FOLIO_PARTICLES", "GPU")
	t.Setenv("FOLIO_REDUCED_MOTION", "1")
	t.Setenv("FOLIO_SEED", "5")
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.ParticleMode != FieldGPU || !s.ReducedMotion || s.Seed != 5 {
		t.Fatalf("env not applied: %+v", s)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	clearFolioEnv(t)

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}

	t.Setenv("FOLIO_PARTICLES", "webgpu")
	_, err := LoadSettings("")
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("err = %v, want ErrInvalidSettings", err)
	}

	t.Setenv("FOLIO_PARTICLES", "")
	t.Setenv("FOLIO_SEED", "not-a-number")
	if _, err := LoadSettings(""); err == nil {
		t.Fatal("bad seed accepted")
	}
}
