// Package config loads the optional .rustlens.toml that overrides the
// file-discovery patterns and the heuristic thresholds of spec.md §4.6.
// Shaped after the teacher's internal/config/config.go Config struct —
// plain nested structs, a package-level Default, and a tolerant Load that
// falls back to defaults when no config file exists.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Thresholds holds the inclusive cutoffs from spec.md §4.6. Every field
// defaults to the spec's own number; a project can loosen or tighten them
// without a code change.
type Thresholds struct {
	LongFunctionLines int `toml:"long_function_lines"`
	HighComplexity    int `toml:"high_complexity"`
	TooManyParameters int `toml:"too_many_parameters"`
	WideStructFields  int `toml:"wide_struct_fields"`
	WideEnumVariants  int `toml:"wide_enum_variants"`
	ExcessiveCallees  int `toml:"excessive_callees"`
	ExcessiveCallers  int `toml:"excessive_callers"`
	GodObjectUses     int `toml:"god_object_uses"`
}

// DefaultThresholds mirrors the table in spec.md §4.6 exactly.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongFunctionLines: 50,
		HighComplexity:    10,
		TooManyParameters: 5,
		WideStructFields:  10,
		WideEnumVariants:  10,
		ExcessiveCallees:  10,
		ExcessiveCallers:  10,
		GodObjectUses:     10,
	}
}

// Discovery controls which files the Index Builder (C4) walks, via
// glob patterns (spec.md §4.4 step 1's "target-language source" test,
// expressed as include globs rather than a bare extension list).
type Discovery struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

func DefaultDiscovery() Discovery {
	return Discovery{
		Include: []string{"**/*.rs"},
		Exclude: []string{"**/target/**", "**/.git/**"},
	}
}

// Config is the root configuration value; Load always returns one even
// when no file is found.
type Config struct {
	Thresholds Thresholds `toml:"thresholds"`
	Discovery  Discovery  `toml:"discovery"`
}

// Default returns the configuration the engine uses when the config file
// passed to Load does not exist (or no path is given).
func Default() Config {
	return Config{
		Thresholds: DefaultThresholds(),
		Discovery:  DefaultDiscovery(),
	}
}

// Load reads path and overlays it onto Default(). A missing file is not an
// error: the engine runs fine with defaults. A malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
