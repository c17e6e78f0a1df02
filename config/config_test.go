package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/strand"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, strand.DefaultParams(), cfg.StrandParams())
	assert.Equal(t, parameter.SessionDuration, cfg.SessionDuration())
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	t.Setenv("CRABCUT_AUDIO_ENABLED", "")
	t.Setenv("CRABCUT_MASTER_VOLUME", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("CRABCUT_AUDIO_ENABLED", "")
	t.Setenv("CRABCUT_MASTER_VOLUME", "")

	path := filepath.Join(t.TempDir(), "crabcut.toml")
	data := `
seed = 99

[session]
duration_seconds = 12.5

[strand]
segment_count = 3
kinkiness = 0.5

[audio]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 12500*time.Millisecond, cfg.SessionDuration())
	assert.Equal(t, 3, cfg.Strand.SegmentCount)
	assert.Equal(t, 0.5, cfg.Strand.Kinkiness)
	assert.False(t, cfg.Audio.Enabled)

	// Untouched keys keep defaults
	assert.Equal(t, parameter.StrandSegmentLength, cfg.Strand.SegmentLength)
	assert.Equal(t, parameter.FollicleCount, cfg.Follicles.Count)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[strand]\nsegmnet_count = 3\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValueRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[strand]\noverlap = 1.5\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, strand.ErrInvalidParams)
}

func TestDecode_SameRulesAsLoad(t *testing.T) {
	noEnv := func(string) string { return "" }

	cfg, err := decode("[follicles]\ncount = 2\n", noEnv)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Follicles.Count)

	_, err = decode("[follicles]\ncount = 0\n", noEnv)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = decode("[follicles]\ncuont = 2\n", noEnv)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = decode("not toml = = =", noEnv)
	assert.Error(t, err)

	// Environment applies after the file
	env := map[string]string{"CRABCUT_MASTER_VOLUME": "30"}
	cfg, err = decode("[audio]\nmaster_volume = 0.9\n", func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.InDelta(t, 0.3, cfg.Audio.MasterVolume, 1e-12)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CRABCUT_AUDIO_ENABLED": "false",
		"CRABCUT_MASTER_VOLUME": "250",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 1.0, cfg.Audio.MasterVolume)

	env["CRABCUT_MASTER_VOLUME"] = "40"
	env["CRABCUT_AUDIO_ENABLED"] = "maybe"
	cfg = Default()
	cfg.applyEnv(func(k string) string { return env[k] })
	assert.True(t, cfg.Audio.Enabled)
	assert.InDelta(t, 0.4, cfg.Audio.MasterVolume, 1e-12)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Session.DurationSeconds = 0 }},
		{"critical above one", func(c *Config) { c.Session.CriticalFraction = 1.5 }},
		{"no follicles", func(c *Config) { c.Follicles.Count = 0 }},
		{"no groups", func(c *Config) { c.Follicles.Groups = 0 }},
		{"inverted radius", func(c *Config) { c.Follicles.RadiusMin, c.Follicles.RadiusMax = 1.3, 1.1 }},
		{"negative jitter", func(c *Config) { c.Follicles.AngleJitter = -1 }},
		{"length jitter one", func(c *Config) { c.Follicles.LengthJitter = 1 }},
		{"loud", func(c *Config) { c.Audio.MasterVolume = 2 }},
		{"bad strand", func(c *Config) { c.Strand.SegmentWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
