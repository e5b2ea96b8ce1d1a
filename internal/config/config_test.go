package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hc08re/internal/analysis"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(0x8000), cfg.BaseAddress)
	assert.Equal(t, "mc68hc908gz60", cfg.Registers)
	assert.Equal(t, uint32(0x0040), cfg.RAMLow)
	assert.Equal(t, uint32(0x083F), cfg.RAMHigh)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hc08re.yaml")
	content := `base_address: 0xC000
min_string_length: 6
constants: [0x7E0]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xC000), cfg.BaseAddress)
	assert.Equal(t, 6, cfg.MinStringLength)
	assert.Equal(t, []uint16{0x7E0}, cfg.Constants)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(50), cfg.LargeLoop)
	assert.Equal(t, "mc68hc908gz60", cfg.Registers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ram_low: 0x900\nram_high: 0x100\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"min string length", func(c *Config) { c.MinStringLength = 0 }, "min_string_length"},
		{"decode limit", func(c *Config) { c.DecodeLimit = -1 }, "decode_limit"},
		{"ram range", func(c *Config) { c.RAMLow = 0x1000 }, "ram_low"},
		{"region size", func(c *Config) { c.RegionSize = 0 }, "region_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestAnalysisOptions(t *testing.T) {
	opts := Default().AnalysisOptions(nil)
	assert.Equal(t, uint32(0x0040), opts.RAM.Low)
	assert.Equal(t, uint32(0x083F), opts.RAM.High)
	assert.Equal(t, 4, opts.MinStringLength)

	cfg := Default()
	cfg.RAMLow, cfg.RAMHigh = 0, 0
	require.NoError(t, cfg.Validate())
	opts = cfg.AnalysisOptions(nil)
	require.NotNil(t, opts.RAM)
	assert.Equal(t, analysis.RAMRange{}, *opts.RAM)
}

func TestSchema(t *testing.T) {
	bts, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(bts, &doc))
	assert.Contains(t, string(bts), "min_string_length")
	assert.Contains(t, string(bts), "Register Table")
}
