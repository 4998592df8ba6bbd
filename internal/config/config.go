// Package config loads ambient, non-normative kernel bootstrap settings.
// It never configures an admission invariant (friction ladder, confidence
// thresholds, step order) — those are fixed by the kernel's specification
// and compiled in. This mirrors the teacher's internal/config.Config
// shape (DefaultConfig/Load/Save) scoped down to what a library actually
// needs to be told from the outside; environment variables are not read.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// KernelConfig holds ambient settings for constructing a Kernel.
type KernelConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Observer ObserverConfig `yaml:"observer"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// LoggingConfig controls verbosity only; it cannot disable any admission
// check or the evidence it produces.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // console|json
}

// ObserverConfig tunes the Observer Hub's fan-out without affecting
// admission outcomes (P5: observer set is irrelevant to Results).
type ObserverConfig struct {
	// QueueSize is the bounded channel capacity per subscriber.
	QueueSize int `yaml:"queue_size"`
	// DispatchTimeout is checked by Validate but not read by the hub:
	// Emit never waits on a full queue, it drops the event at once.
	DispatchTimeout time.Duration `yaml:"dispatch_timeout"`
}

// SnapshotConfig is advisory only. The Snapshot Store is append-only by
// spec; RetentionHint is loaded and saved but no component reads it, so
// it never causes a snapshot to be dropped.
type SnapshotConfig struct {
	RetentionHint int `yaml:"retention_hint"`
}

// DefaultConfig returns the default ambient configuration.
func DefaultConfig() *KernelConfig {
	return &KernelConfig{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Observer: ObserverConfig{
			QueueSize:       64,
			DispatchTimeout: 2 * time.Second,
		},
		Snapshot: SnapshotConfig{
			RetentionHint: 10000,
		},
	}
}

// Load reads a KernelConfig from a YAML file, falling back to defaults
// for any field the file omits and for the file not existing at all.
func Load(path string) (*KernelConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *KernelConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the ambient configuration for internal consistency.
func (c *KernelConfig) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	if c.Observer.QueueSize <= 0 {
		return fmt.Errorf("observer.queue_size must be positive, got %d", c.Observer.QueueSize)
	}
	if c.Observer.DispatchTimeout <= 0 {
		return fmt.Errorf("observer.dispatch_timeout must be positive, got %v", c.Observer.DispatchTimeout)
	}
	return nil
}
