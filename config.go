package boardfinder

import (
	"runtime"
	"strings"
	"time"
)

// Config holds the configuration for a platform adapter
type Config struct {
	Runner         Runner
	DevDir         string        // Root of the device-node tree on POSIX systems
	CommandTimeout time.Duration // Applied to every external command
	GOOS           string        // Operating system the adapter is built for
}

// Option is a functional option for configuring a platform adapter
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		DevDir:         "/dev",
		CommandTimeout: DefaultCommandTimeout,
		GOOS:           runtime.GOOS,
	}
}

// WithRunner replaces the command runner, mainly for tests
func WithRunner(r Runner) Option {
	return func(c *Config) error {
		if r == nil {
			return ErrInvalidConfig
		}
		c.Runner = r
		return nil
	}
}

// WithDevDir sets the directory globbed for tty nodes
func WithDevDir(dir string) Option {
	return func(c *Config) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return ErrInvalidConfig
		}
		c.DevDir = dir
		return nil
	}
}

// WithCommandTimeout sets the timeout for external commands (0 disables it)
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return ErrInvalidConfig
		}
		c.CommandTimeout = timeout
		return nil
	}
}

// WithGOOS overrides the detected operating system
func WithGOOS(goos string) Option {
	return func(c *Config) error {
		goos = strings.ToLower(strings.TrimSpace(goos))
		if goos == "" {
			return ErrInvalidConfig
		}
		c.GOOS = goos
		return nil
	}
}

func (c Config) runner() Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return ExecRunner{Timeout: c.CommandTimeout}
}
