package boardfinder

import "context"

// linuxPlatform globs tty nodes and describes each with udevadm's
// attribute walk.
type linuxPlatform struct {
	runner Runner
	devDir string
}

func (p *linuxPlatform) Name() string { return "Linux" }

func (p *linuxPlatform) ListCandidates(ctx context.Context) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return globCandidates(p.devDir, "tty*", linuxExcludePatterns)
}

func (p *linuxPlatform) Describe(ctx context.Context, c Candidate) (string, error) {
	out, err := p.runner.Run(ctx, nil, "udevadm", "info", "-a", "-n", string(c))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (p *linuxPlatform) ReportsUSBIDs() bool        { return true }
func (p *linuxPlatform) NeedsPermissionGrant() bool { return true }
func (p *linuxPlatform) Requirements() []Utility    { return []Utility{{Command: "udevadm"}} }
