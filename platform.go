package boardfinder

import "context"

// Platform enumerates and describes candidate devices for one operating
// system. It is selected once at startup; callers never branch on OS names.
type Platform interface {
	// Name returns the OS label: "Linux", "Darwin" or "Windows".
	Name() string

	// ListCandidates returns the raw device entries for one discovery pass,
	// without duplicates, in enumeration order.
	ListCandidates(ctx context.Context) ([]Candidate, error)

	// Describe returns the descriptive text searched for family keywords.
	Describe(ctx context.Context, c Candidate) (string, error)

	// ReportsUSBIDs reports whether descriptions carry idVendor/idProduct.
	ReportsUSBIDs() bool

	// NeedsPermissionGrant reports whether device nodes have an access mode
	// that can be widened.
	NeedsPermissionGrant() bool

	// Requirements lists the external utilities the adapter invokes.
	Requirements() []Utility
}

// Utility is an external program used by an adapter. Optional marks a
// fallback that may be absent as long as the utilities before it exist.
type Utility struct {
	Command  string
	Optional bool
}

// DetectPlatform returns the adapter for the configured operating system.
// Anything other than Windows or macOS is treated as Linux.
func DetectPlatform(opts ...Option) (Platform, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	switch config.GOOS {
	case "windows":
		return &windowsPlatform{runner: config.runner()}, nil
	case "darwin":
		return &darwinPlatform{runner: config.runner(), devDir: config.DevDir}, nil
	default:
		return &linuxPlatform{runner: config.runner(), devDir: config.DevDir}, nil
	}
}
