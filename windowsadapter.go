package boardfinder

import (
	"bufio"
	"context"
	"errors"
	"strings"
)

// windowsPlatform lists PnP entity captions. A caption is its own
// description; no further lookup happens.
type windowsPlatform struct {
	runner Runner
}

const captionHeader = "Caption"

var (
	wmicArgs       = []string{"path", "Win32_PnPEntity", "get", captionHeader}
	powershellArgs = []string{"-NoProfile", "-NonInteractive", "-Command",
		"Get-CimInstance Win32_PnPEntity | Select-Object -ExpandProperty Caption"}
)

func (p *windowsPlatform) Name() string { return "Windows" }

// ListCandidates queries wmic, falling back to PowerShell on hosts where
// wmic has been removed.
func (p *windowsPlatform) ListCandidates(ctx context.Context) ([]Candidate, error) {
	out, err := p.runner.Run(ctx, nil, "wmic", wmicArgs...)
	if err != nil {
		var fallbackErr error
		out, fallbackErr = p.runner.Run(ctx, nil, "powershell", powershellArgs...)
		if fallbackErr != nil {
			return nil, errors.Join(err, fallbackErr)
		}
	}
	return parseCaptions(decodeOutput(out)), nil
}

func (p *windowsPlatform) Describe(_ context.Context, c Candidate) (string, error) {
	return string(c), nil
}

func (p *windowsPlatform) ReportsUSBIDs() bool        { return false }
func (p *windowsPlatform) NeedsPermissionGrant() bool { return false }
func (p *windowsPlatform) Requirements() []Utility {
	return []Utility{{Command: "wmic"}, {Command: "powershell", Optional: true}}
}

// parseCaptions turns caption listing output into candidates, dropping the
// column header, blank lines and repeated captions.
func parseCaptions(output string) []Candidate {
	var candidates []Candidate
	scanner := bufio.NewScanner(strings.NewReader(output))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if line == captionHeader {
				continue
			}
		}
		candidates = append(candidates, Candidate(line))
	}
	return dedupe(candidates)
}
