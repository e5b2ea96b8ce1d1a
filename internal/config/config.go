// Package config holds the analysis settings shared by every command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"hc08re/internal/analysis"
	"hc08re/internal/registers"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents configuration for the hc08re tool
type Config struct {
	BaseAddress     uint32   `yaml:"base_address" json:"base_address" jsonschema:"title=Base Address,description=Load address of flat binary images,default=32768"`
	MinStringLength int      `yaml:"min_string_length" json:"min_string_length" jsonschema:"title=Minimum String Length,description=Shortest printable run reported as a string,minimum=1,default=4"`
	Registers       string   `yaml:"registers" json:"registers" jsonschema:"title=Register Table,description=Builtin register table name or path to a YAML table,default=mc68hc908gz60"`
	DecodeLimit     int      `yaml:"decode_limit" json:"decode_limit" jsonschema:"title=Decode Limit,description=Stop disassembly after this many instructions (0 for all),minimum=0"`
	RAMLow          uint32   `yaml:"ram_low" json:"ram_low" jsonschema:"title=RAM Low,description=First RAM address (inclusive),default=64"`
	RAMHigh         uint32   `yaml:"ram_high" json:"ram_high" jsonschema:"title=RAM High,description=Last RAM address (inclusive),default=2111"`
	LargeLoop       uint32   `yaml:"large_loop" json:"large_loop" jsonschema:"title=Large Loop,description=Backward distance above which a loop is reported as large,default=50"`
	RegionSize      uint32   `yaml:"region_size" json:"region_size" jsonschema:"title=Region Size,description=Bucket size used to group subroutines,default=4096"`
	Constants       []uint16 `yaml:"constants" json:"constants" jsonschema:"title=Constants,description=16-bit values to locate in both byte orders"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		BaseAddress:     0x8000,
		MinStringLength: analysis.DefaultMinStringLength,
		Registers:       registers.DefaultTable,
		RAMLow:          analysis.DefaultRAMLow,
		RAMHigh:         analysis.DefaultRAMHigh,
		LargeLoop:       analysis.DefaultLargeLoop,
		RegionSize:      analysis.DefaultRegionSize,
		Constants:       append([]uint16(nil), analysis.DefaultConstants...),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges.
func (c Config) Validate() error {
	switch {
	case c.MinStringLength < 1:
		return fmt.Errorf("%w: min_string_length must be at least 1, got %d", ErrInvalid, c.MinStringLength)
	case c.DecodeLimit < 0:
		return fmt.Errorf("%w: decode_limit must not be negative, got %d", ErrInvalid, c.DecodeLimit)
	case c.RAMLow > c.RAMHigh:
		return fmt.Errorf("%w: ram_low 0x%04X is above ram_high 0x%04X", ErrInvalid, c.RAMLow, c.RAMHigh)
	case c.RegionSize == 0:
		return fmt.Errorf("%w: region_size must be positive", ErrInvalid)
	}
	return nil
}

// AnalysisOptions converts the config into pass options.
func (c Config) AnalysisOptions(regs *registers.Table) analysis.Options {
	return analysis.Options{
		Registers:       regs,
		RAM:             &analysis.RAMRange{Low: c.RAMLow, High: c.RAMHigh},
		MinStringLength: c.MinStringLength,
		DecodeLimit:     c.DecodeLimit,
		LargeLoop:       c.LargeLoop,
		Constants:       c.Constants,
	}
}

// Schema returns the JSON schema of Config.
func Schema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	bts, err := json.MarshalIndent(reflector.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return bts, nil
}
