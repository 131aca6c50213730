package boardfinder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"
)

// GrantOutcome describes what Grant did to a device node.
type GrantOutcome int

const (
	GrantFailed            GrantOutcome = iota // Grant did not complete
	GrantApplied                               // Access mode changed through elevation
	GrantNotRequired                           // Platform has no device access modes
	GrantAlreadyAccessible                     // Current user can already read and write
)

func (o GrantOutcome) String() string {
	switch o {
	case GrantApplied:
		return "applied"
	case GrantNotRequired:
		return "not required"
	case GrantAlreadyAccessible:
		return "already accessible"
	default:
		return "failed"
	}
}

// CredentialProvider supplies the password handed to the elevation command.
type CredentialProvider interface {
	Credential(ctx context.Context, prompt string) (string, error)
}

// CredentialFunc adapts a function to the CredentialProvider interface.
type CredentialFunc func(ctx context.Context, prompt string) (string, error)

func (f CredentialFunc) Credential(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// StaticCredential always returns the same secret.
type StaticCredential string

func (s StaticCredential) Credential(context.Context, string) (string, error) {
	return string(s), nil
}

const (
	DefaultElevationCommand = "sudo"
	DefaultDeviceRoot       = "/dev"
)

// DefaultDeviceMode grants world read/write access.
const DefaultDeviceMode os.FileMode = 0o666

// Grantor widens the access mode of device nodes through an elevation
// command such as sudo.
type Grantor struct {
	platform    Platform
	runner      Runner
	credentials CredentialProvider
	elevation   string
	mode        os.FileMode
	deviceRoot  string
	accessible  func(path string) bool
	logger      zerolog.Logger
}

// GrantOption configures a Grantor
type GrantOption func(*Grantor)

// WithElevationRunner sets the runner used for the elevated command
func WithElevationRunner(r Runner) GrantOption {
	return func(g *Grantor) { g.runner = r }
}

// WithCredentials sets the credential provider
func WithCredentials(p CredentialProvider) GrantOption {
	return func(g *Grantor) { g.credentials = p }
}

// WithElevationCommand sets the elevation program (default sudo). It must
// accept -S to read the password from stdin.
func WithElevationCommand(name string) GrantOption {
	return func(g *Grantor) {
		if name = strings.TrimSpace(name); name != "" {
			g.elevation = name
		}
	}
}

// WithDeviceMode sets the permission bits applied to device nodes
func WithDeviceMode(mode os.FileMode) GrantOption {
	return func(g *Grantor) { g.mode = mode.Perm() }
}

// WithDeviceRoot sets the prefix added to bare device names
func WithDeviceRoot(dir string) GrantOption {
	return func(g *Grantor) {
		if dir = strings.TrimRight(dir, "/"); dir != "" {
			g.deviceRoot = dir
		}
	}
}

// WithAccessCheck replaces the "already readable and writable" probe
func WithAccessCheck(check func(path string) bool) GrantOption {
	return func(g *Grantor) { g.accessible = check }
}

// WithGrantLogger sets the logger
func WithGrantLogger(logger zerolog.Logger) GrantOption {
	return func(g *Grantor) { g.logger = logger }
}

// NewGrantor creates a Grantor for the given platform
func NewGrantor(platform Platform, opts ...GrantOption) *Grantor {
	g := &Grantor{
		platform:   platform,
		runner:     ExecRunner{Timeout: DefaultCommandTimeout},
		elevation:  DefaultElevationCommand,
		mode:       DefaultDeviceMode,
		deviceRoot: DefaultDeviceRoot,
		accessible: canReadWrite,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DevicePath prefixes bare device names with the device root.
func (g *Grantor) DevicePath(device string) string {
	if strings.HasPrefix(device, g.deviceRoot+"/") {
		return device
	}
	return path.Join(g.deviceRoot, device)
}

// Grant makes the device node readable and writable by all local users.
// It prompts for a credential once and runs a single elevated chmod; a
// failure is returned as an *ElevationError and never retried.
func (g *Grantor) Grant(ctx context.Context, device string) (GrantOutcome, error) {
	if strings.TrimSpace(device) == "" {
		return GrantFailed, fmt.Errorf("%w: empty device path", ErrDeviceNotFound)
	}
	if !g.platform.NeedsPermissionGrant() {
		return GrantNotRequired, nil
	}

	device = g.DevicePath(device)
	log := g.logger.With().Str("device", device).Logger()

	if g.accessible != nil && g.accessible(device) {
		log.Debug().Msg("device already readable and writable")
		return GrantAlreadyAccessible, nil
	}

	if g.credentials == nil {
		return GrantFailed, fmt.Errorf("%w: no credential provider configured", ErrElevationFailed)
	}
	secret, err := g.credentials.Credential(ctx, fmt.Sprintf("Enter your %s password: ", g.elevation))
	if err != nil {
		return GrantFailed, fmt.Errorf("credential for %s: %w", device, err)
	}

	mode := fmt.Sprintf("%04o", uint32(g.mode))
	_, err = g.runner.Run(ctx, strings.NewReader(secret+"\n"), g.elevation, "-S", "-p", "", "chmod", mode, device)
	if err != nil {
		output := ""
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			output = cmdErr.Stderr
		}
		log.Error().Err(err).Msg("elevated chmod failed")
		return GrantFailed, &ElevationError{Path: device, Output: output, Err: err}
	}

	log.Info().Str("mode", mode).Msg("device permissions updated")
	return GrantApplied, nil
}
