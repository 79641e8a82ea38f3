package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fpemud/robust-git/internal/git"
	"github.com/fpemud/robust-git/internal/proc"
	"github.com/fpemud/robust-git/internal/retry"
)

// DefaultFile is the settings file looked up in the working directory when
// no --config flag is given.
const DefaultFile = "robustgit.yaml"

// Duration is a time.Duration that unmarshals from YAML strings like "60s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"60s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the tunable supervision and retry settings.
type Config struct {
	GitBin        string   `yaml:"git_bin"`
	StuckTimeout  Duration `yaml:"stuck_timeout"`
	RetryEvery    Duration `yaml:"retry_every"`
	MaxAttempts   int      `yaml:"max_attempts"`
	LowSpeedLimit int      `yaml:"low_speed_limit"`
	LowSpeedTime  int      `yaml:"low_speed_time"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		GitBin:        "git",
		StuckTimeout:  Duration(proc.DefaultStuckTimeout),
		RetryEvery:    Duration(retry.DefaultBackoff),
		MaxAttempts:   0, // unbounded
		LowSpeedLimit: git.DefaultLowSpeedLimit,
		LowSpeedTime:  git.DefaultLowSpeedTime,
	}
}

// Load reads and validates a settings file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads path if it exists, otherwise returns the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		c := Default()
		return &c, nil
	}
	return Load(path)
}

// Parse parses and validates settings file content. Absent fields keep
// their defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func validate(c *Config) error {
	if c.GitBin == "" {
		return fmt.Errorf("config: git_bin must not be empty")
	}
	if c.StuckTimeout <= 0 {
		return fmt.Errorf("config: stuck_timeout must be positive")
	}
	if c.RetryEvery <= 0 {
		return fmt.Errorf("config: retry_every must be positive")
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("config: max_attempts must not be negative")
	}
	if c.LowSpeedLimit <= 0 || c.LowSpeedTime <= 0 {
		return fmt.Errorf("config: low speed settings must be positive")
	}
	return nil
}
