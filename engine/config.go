// Config is an optional, JSON-loadable set of engine parameters,
// following the same Default*/Validate/Load/Save shape the teacher
// repo uses for its timing configuration (timing/latency/config.go).
// It makes the code base address (default 4000) and the data memory
// size (default memory.DefaultDataSize, 4096 cells) configurable; the
// register count is not configurable and stays at 16.
package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/apex/loader"
	"github.com/sarchlab/apex/memory"
)

// Config holds the tunable parameters of an Engine.
type Config struct {
	// CodeBase is the byte address of the first instruction.
	CodeBase uint32 `json:"code_base"`

	// DataMemorySize is the number of addressable data-memory cells.
	DataMemorySize int `json:"data_memory_size"`

	// Variant selects stall-only or forwarding hazard resolution.
	Variant Variant `json:"variant"`

	// Trace enables per-cycle structured trace events (display mode).
	Trace bool `json:"trace"`
}

// DefaultConfig returns the conventional APEX configuration: code base
// 4000, a data memory generous enough to dump 100 cells with headroom,
// stall-only hazard resolution, tracing off.
func DefaultConfig() *Config {
	return &Config{
		CodeBase:       loader.DefaultBase,
		DataMemorySize: memory.DefaultDataSize,
		Variant:        VariantStallOnly,
		Trace:          false,
	}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.DataMemorySize <= 0 {
		return fmt.Errorf("engine: data_memory_size must be > 0")
	}
	if c.Variant != VariantStallOnly && c.Variant != VariantForwarding {
		return fmt.Errorf("engine: unknown variant %d", c.Variant)
	}
	return nil
}

// LoadConfig reads a JSON-encoded Config from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("engine: parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c as JSON to path.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("engine: serializing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("engine: writing config file: %w", err)
	}
	return nil
}
