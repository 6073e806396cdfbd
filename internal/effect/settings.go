package effect

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FieldMode selects the particle field strategy.
type FieldMode string

const (
	FieldCPU FieldMode = "cpu"
	FieldGPU FieldMode = "gpu"
)

// Settings are read once at startup; later changes are not observed.
type Settings struct {
	ImagePath     string    `json:"image,omitempty"`
	ParticleMode  FieldMode `json:"particles,omitempty"`
	ParticleCount int       `json:"particleCount,omitempty"`
	ReducedMotion bool      `json:"reducedMotion,omitempty"`
	Mute          bool      `json:"mute,omitempty"`
	Seed          uint64    `json:"seed,omitempty"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
}

var ErrInvalidSettings = errors.New("invalid settings")

// DefaultSettings returns the settings used when no config file is given.
func DefaultSettings() Settings {
	return Settings{
		ImagePath:    DefaultImagePath,
		ParticleMode: FieldCPU,
		Seed:         uint64(time.Now().UnixNano()),
		Width:        WindowWidth,
		Height:       WindowHeight,
	}
}

// LoadSettings reads an optional JSON file on top of the defaults and then
// applies FOLIO_* environment overrides. An empty path skips the file.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read settings: %w", err)
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}
	if err := s.applyEnv(os.Getenv); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	if v := getenv("FOLIO_IMAGE"); v != "" {
		s.ImagePath = v
	}
	if v := getenv("FOLIO_PARTICLES"); v != "" {
		s.ParticleMode = FieldMode(strings.ToLower(v))
	}
	if v := getenv("FOLIO_REDUCED_MOTION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FOLIO_REDUCED_MOTION: %w", err)
		}
		s.ReducedMotion = b
	}
	if v := getenv("FOLIO_MUTE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FOLIO_MUTE: %w", err)
		}
		s.Mute = b
	}
	if v := getenv("FOLIO_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("FOLIO_SEED: %w", err)
		}
		s.Seed = n
	}
	return nil
}

// Validate fills zero values with defaults and rejects values no component can use.
func (s *Settings) Validate() error {
	switch s.ParticleMode {
	case "":
		s.ParticleMode = FieldCPU
	case FieldCPU, FieldGPU:
	default:
		return fmt.Errorf("%w: particle mode %q", ErrInvalidSettings, s.ParticleMode)
	}
	if s.ParticleCount < 0 {
		return fmt.Errorf("%w: particle count %d", ErrInvalidSettings, s.ParticleCount)
	}
	if s.ParticleCount == 0 {
		s.ParticleCount = CPUParticleCount
		if s.ParticleMode == FieldGPU {
			s.ParticleCount = GPUParticleCount
		}
	}
	if s.Width <= 0 {
		s.Width = WindowWidth
	}
	if s.Height <= 0 {
		s.Height = WindowHeight
	}
	if s.ImagePath == "" {
		s.ImagePath = DefaultImagePath
	}
	if s.Seed == 0 {
		s.Seed = 1
	}
	return nil
}
