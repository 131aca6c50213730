// Package settings loads boardfinder configuration from defaults, an
// optional config file, BOARDFINDER_* environment variables and bound flags.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/logger"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "BOARDFINDER"
	configName = "config"
	appDir     = "boardfinder"
)

// Configuration keys
const (
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyCommandTimeout   = "command_timeout"
	KeyDevDir           = "dev_dir"
	KeyElevationCommand = "elevation.command"
	KeyElevationMode    = "elevation.mode"
	KeyFamilies         = "families"
)

type Settings struct {
	Log            logger.Config `mapstructure:"log"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	DevDir         string        `mapstructure:"dev_dir"`
	Elevation      Elevation     `mapstructure:"elevation"`
	Families       []Family      `mapstructure:"families"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

type Elevation struct {
	Command string `mapstructure:"command"`
	// Mode is an octal permission string such as "0666".
	Mode string `mapstructure:"mode"`
}

// Family is a user-defined signature appended after the built-in ones.
type Family struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	defaults := logger.DefaultConfig()
	v.SetDefault(KeyLogLevel, defaults.Level)
	v.SetDefault(KeyLogFormat, defaults.Format)
	v.SetDefault(KeyCommandTimeout, boardfinder.DefaultCommandTimeout)
	v.SetDefault(KeyDevDir, boardfinder.DefaultDeviceRoot)
	v.SetDefault(KeyElevationCommand, boardfinder.DefaultElevationCommand)
	v.SetDefault(KeyElevationMode, fmt.Sprintf("%04o", uint32(boardfinder.DefaultDeviceMode)))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile, or searches the user config directory when it is
// empty, and decodes the merged settings. A missing searched file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, configFile string) (Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	s.ConfigFile = v.ConfigFileUsed()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func searchPaths() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, appDir))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+appDir))
	}
	return dirs
}

// Validate checks values that cannot be expressed as types.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.DevDir) == "" {
		return fmt.Errorf("%w: %s must not be empty", boardfinder.ErrInvalidConfig, KeyDevDir)
	}
	if s.CommandTimeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", boardfinder.ErrInvalidConfig, KeyCommandTimeout)
	}
	if _, err := s.DeviceMode(); err != nil {
		return err
	}
	if _, err := s.Table(); err != nil {
		return err
	}
	return nil
}

// DeviceMode parses the configured elevation mode.
func (s Settings) DeviceMode() (os.FileMode, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s.Elevation.Mode), "0o")
	if raw == "" {
		return boardfinder.DefaultDeviceMode, nil
	}
	mode, err := strconv.ParseUint(raw, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, fmt.Errorf("%w: %s %q is not an octal permission mode", boardfinder.ErrInvalidConfig, KeyElevationMode, s.Elevation.Mode)
	}
	return os.FileMode(mode), nil
}

// Signatures converts the configured families.
func (s Settings) Signatures() []boardfinder.Signature {
	sigs := make([]boardfinder.Signature, 0, len(s.Families))
	for _, f := range s.Families {
		sigs = append(sigs, boardfinder.Signature{Family: f.Name, Keywords: f.Keywords})
	}
	return sigs
}

// Table returns the built-in table extended with the configured families.
func (s Settings) Table() (*boardfinder.Table, error) {
	table := boardfinder.DefaultTable()
	if len(s.Families) == 0 {
		return table, nil
	}
	extended, err := table.Extend(s.Signatures()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyFamilies, err)
	}
	return extended, nil
}

// PlatformOptions maps settings onto discovery options.
func (s Settings) PlatformOptions() []boardfinder.Option {
	return []boardfinder.Option{
		boardfinder.WithDevDir(s.DevDir),
		boardfinder.WithCommandTimeout(s.CommandTimeout),
	}
}
