// Package logger builds the zerolog logger shared by the CLI commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`

	// Output defaults to os.Stderr; discovery listings own stdout.
	Output io.Writer `mapstructure:"-"`
}

func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: FormatAuto,
	}
}

// New returns a logger for config and installs it as the zerolog global.
func New(config Config) (zerolog.Logger, error) {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	level := zerolog.WarnLevel
	if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", config.Level, err)
		}
	}

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	switch format := strings.ToLower(config.Format); format {
	case "", FormatAuto:
		if isTerminal(output) {
			output = consoleWriter(output, timeFormat)
		}
	case FormatConsole:
		output = consoleWriter(output, timeFormat)
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: expected auto, console or json", config.Format)
	}

	zerolog.TimeFieldFormat = timeFormat
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = logger

	return logger, nil
}

// WithComponent tags a logger with the emitting component.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func consoleWriter(out io.Writer, timeFormat string) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    !isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
