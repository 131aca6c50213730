package boardfinder

import (
	"context"
	"sync"
)

// darwinPlatform globs /dev/tty.* nodes. The USB subsystem dump is not
// keyed by device, so every candidate is described by the same dump; it is
// fetched once per enumeration pass, and a failed fetch fails the whole pass.
type darwinPlatform struct {
	runner Runner
	devDir string

	mu      sync.Mutex
	dump    string
	dumpErr error
	cached  bool
}

func (p *darwinPlatform) Name() string { return "Darwin" }

func (p *darwinPlatform) ListCandidates(ctx context.Context) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.dump, p.dumpErr, p.cached = "", nil, false
	p.mu.Unlock()

	return globCandidates(p.devDir, "tty.*", nil)
}

func (p *darwinPlatform) Describe(ctx context.Context, _ Candidate) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cached {
		out, err := p.runner.Run(ctx, nil, "system_profiler", "SPUSBDataType")
		p.dump, p.dumpErr, p.cached = string(out), err, true
	}
	if p.dumpErr != nil {
		return "", p.dumpErr
	}
	return p.dump, nil
}

func (p *darwinPlatform) ReportsUSBIDs() bool        { return true }
func (p *darwinPlatform) NeedsPermissionGrant() bool { return true }
func (p *darwinPlatform) Requirements() []Utility    { return []Utility{{Command: "system_profiler"}} }
