/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/logger"
	"github.com/allbin/boardfinder/internal/settings"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// application holds what every command needs once flags and configuration
// are resolved.
type application struct {
	settings settings.Settings
	logger   zerolog.Logger
	table    *boardfinder.Table
	platform boardfinder.Platform
	runner   boardfinder.Runner
	filter   []string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var app = &application{
	logger: zerolog.Nop(),
	stdin:  os.Stdin,
	stdout: os.Stdout,
	stderr: os.Stderr,
}

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  settings.KeyLogLevel,
	"log-format": settings.KeyLogFormat,
	"timeout":    settings.KeyCommandTimeout,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// setup loads configuration, builds the logger and signature table, picks
// the platform adapter and validates the --device filter.
func (a *application) setup(cmd *cobra.Command) error {
	v := settings.New()
	if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	s, err := settings.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logConfig := s.Log
	logConfig.Output = a.stderr
	log, err := logger.New(logConfig)
	if err != nil {
		return err
	}

	table, err := s.Table()
	if err != nil {
		return err
	}

	runner := boardfinder.ExecRunner{Timeout: s.CommandTimeout}
	platform, err := boardfinder.DetectPlatform(append(s.PlatformOptions(), boardfinder.WithRunner(runner))...)
	if err != nil {
		return err
	}

	devices, _ := cmd.Flags().GetStringSlice("device")
	filter, err := table.ParseFamilies(devices)
	if err != nil {
		return err
	}

	a.settings = s
	a.logger = log
	a.table = table
	a.platform = platform
	a.runner = runner
	a.filter = filter

	log.Debug().
		Str("config", s.ConfigFile).
		Str("platform", platform.Name()).
		Strs("filter", filter).
		Msg("configuration loaded")
	return nil
}

func (a *application) engine(opts ...boardfinder.EngineOption) *boardfinder.Engine {
	opts = append([]boardfinder.EngineOption{
		boardfinder.WithLogger(logger.WithComponent(a.logger, "discovery")),
	}, opts...)
	return boardfinder.NewEngine(a.platform, a.table, opts...)
}

func (a *application) grantor(credentials boardfinder.CredentialProvider) (*boardfinder.Grantor, error) {
	mode, err := a.settings.DeviceMode()
	if err != nil {
		return nil, err
	}
	opts := []boardfinder.GrantOption{
		boardfinder.WithCredentials(credentials),
		boardfinder.WithElevationCommand(a.settings.Elevation.Command),
		boardfinder.WithDeviceMode(mode),
		boardfinder.WithDeviceRoot(a.settings.DevDir),
		boardfinder.WithGrantLogger(logger.WithComponent(a.logger, "grant")),
	}
	if a.runner != nil {
		opts = append(opts, boardfinder.WithElevationRunner(a.runner))
	}
	return boardfinder.NewGrantor(a.platform, opts...), nil
}

// interactive reports whether both stdin and stderr are terminals.
func (a *application) interactive() bool {
	return isTerminal(a.stdin) && isTerminal(a.stderr)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
