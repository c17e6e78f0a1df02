// Package config loads game settings: compiled defaults from parameter,
// optionally overridden by a TOML file
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/strand"
)

// ErrInvalidConfig reports a setting outside its allowed range
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full game configuration
type Config struct {
	Seed int64 `toml:"seed"`

	Session   SessionConfig  `toml:"session"`
	Strand    StrandConfig   `toml:"strand"`
	Follicles FollicleConfig `toml:"follicles"`
	Audio     AudioConfig    `toml:"audio"`
}

// SessionConfig controls the countdown
type SessionConfig struct {
	DurationSeconds  float64 `toml:"duration_seconds"`
	CriticalFraction float64 `toml:"critical_fraction"`
}

// StrandConfig mirrors strand.Params
type StrandConfig struct {
	SegmentLength    float64 `toml:"segment_length"`
	SegmentWidth     float64 `toml:"segment_width"`
	SegmentCount     int     `toml:"segment_count"`
	Density          float64 `toml:"density"`
	DensityDecay     float64 `toml:"density_decay"`
	Stiffness        float64 `toml:"stiffness"`
	AngularStiffness float64 `toml:"angular_stiffness"`
	AngularDecay     float64 `toml:"angular_decay"`
	TensionStiffness float64 `toml:"tension_stiffness"`
	Overlap          float64 `toml:"overlap"`
	Kinkiness        float64 `toml:"kinkiness"`
}

// FollicleConfig controls placement and randomization
type FollicleConfig struct {
	Count           int     `toml:"count"`
	ArcStart        float64 `toml:"arc_start"`
	ArcEnd          float64 `toml:"arc_end"`
	AngleJitter     float64 `toml:"angle_jitter"`
	LengthJitter    float64 `toml:"length_jitter"`
	KinkinessJitter float64 `toml:"kinkiness_jitter"`
	RadiusMin       float64 `toml:"radius_min"`
	RadiusMax       float64 `toml:"radius_max"`
	Groups          int     `toml:"collision_groups"`
}

// AudioConfig controls sound output
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
}

// Default returns the compiled configuration
func Default() *Config {
	p := strand.DefaultParams()
	return &Config{
		Session: SessionConfig{
			DurationSeconds:  parameter.SessionDuration.Seconds(),
			CriticalFraction: parameter.SessionCriticalFraction,
		},
		Strand: StrandConfig{
			SegmentLength:    p.SegmentLength,
			SegmentWidth:     p.SegmentWidth,
			SegmentCount:     p.SegmentCount,
			Density:          p.Density,
			DensityDecay:     p.DensityDecay,
			Stiffness:        p.Stiffness,
			AngularStiffness: p.AngularStiffness,
			AngularDecay:     p.AngularDecay,
			TensionStiffness: p.TensionStiffness,
			Overlap:          p.Overlap,
			Kinkiness:        p.Kinkiness,
		},
		Follicles: FollicleConfig{
			Count:           parameter.FollicleCount,
			ArcStart:        parameter.FollicleArcStart,
			ArcEnd:          parameter.FollicleArcEnd,
			AngleJitter:     parameter.FollicleAngleJitter,
			LengthJitter:    parameter.FollicleLengthJitter,
			KinkinessJitter: parameter.FollicleKinkinessJitter,
			RadiusMin:       parameter.AnchorRadiusMin,
			RadiusMax:       parameter.AnchorRadiusMax,
			Groups:          parameter.CollisionGroupCount,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1.0,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides
// An empty path yields defaults plus environment
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg, err := decode(string(data), os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// decode applies TOML text and environment over the defaults and validates
// the result. Unknown keys are rejected.
func decode(data string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv reads CRABCUT_AUDIO_ENABLED and CRABCUT_MASTER_VOLUME (0-100)
func (c *Config) applyEnv(getenv func(string) string) {
	if enabled := getenv("CRABCUT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}
	if volume := getenv("CRABCUT_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}
}

// Validate checks every section
func (c *Config) Validate() error {
	if !(c.Session.DurationSeconds > 0) {
		return fmt.Errorf("%w: session.duration_seconds %v must be positive", ErrInvalidConfig, c.Session.DurationSeconds)
	}
	if c.Session.CriticalFraction < 0 || c.Session.CriticalFraction > 1 {
		return fmt.Errorf("%w: session.critical_fraction %v outside [0,1]", ErrInvalidConfig, c.Session.CriticalFraction)
	}
	if err := c.StrandParams().Validate(); err != nil {
		return fmt.Errorf("%w: strand: %w", ErrInvalidConfig, err)
	}
	f := c.Follicles
	if f.Count < 1 {
		return fmt.Errorf("%w: follicles.count %d < 1", ErrInvalidConfig, f.Count)
	}
	if f.Groups < 1 {
		return fmt.Errorf("%w: follicles.collision_groups %d < 1", ErrInvalidConfig, f.Groups)
	}
	if !(f.RadiusMin > 0) || f.RadiusMax < f.RadiusMin {
		return fmt.Errorf("%w: follicles radius range [%v, %v)", ErrInvalidConfig, f.RadiusMin, f.RadiusMax)
	}
	if f.AngleJitter < 0 || f.LengthJitter < 0 || f.LengthJitter >= 1 || f.KinkinessJitter < 0 {
		return fmt.Errorf("%w: follicles jitter must be non-negative, length jitter below 1", ErrInvalidConfig)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: audio.master_volume %v outside [0,1]", ErrInvalidConfig, c.Audio.MasterVolume)
	}
	return nil
}

// SessionDuration returns the countdown length
func (c *Config) SessionDuration() time.Duration {
	return time.Duration(c.Session.DurationSeconds * float64(time.Second))
}

// StrandParams converts the strand section
func (c *Config) StrandParams() strand.Params {
	s := c.Strand
	return strand.Params{
		SegmentLength:    s.SegmentLength,
		SegmentWidth:     s.SegmentWidth,
		SegmentCount:     s.SegmentCount,
		Density:          s.Density,
		DensityDecay:     s.DensityDecay,
		Stiffness:        s.Stiffness,
		AngularStiffness: s.AngularStiffness,
		AngularDecay:     s.AngularDecay,
		TensionStiffness: s.TensionStiffness,
		Overlap:          s.Overlap,
		Kinkiness:        s.Kinkiness,
	}
}
