// Package doctor reports whether the utilities boardfinder shells out to are
// installed on this host.
package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/allbin/boardfinder"
	"github.com/shirou/gopsutil/v3/host"
)

// Requirement is an external utility boardfinder relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// Host summarizes the machine the checks ran on.
type Host struct {
	Hostname        string
	OS              string
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Arch            string
}

type Report struct {
	Platform string
	Host     Host
	HostErr  error
	Checks   []Status
}

// OK reports whether every mandatory requirement is available.
func (r Report) OK() bool {
	for _, s := range r.Checks {
		if !s.Available && !s.Optional {
			return false
		}
	}
	return true
}

var descriptions = map[string]string{
	"udevadm":         "describes tty nodes (systemd/udev)",
	"system_profiler": "dumps the USB device tree",
	"wmic":            "lists Plug and Play devices",
	"powershell":      "lists Plug and Play devices when wmic is unavailable",
}

// Requirements lists what the platform needs. The elevation command is
// optional since it is only used by --enable-port.
func Requirements(p boardfinder.Platform, elevation string) []Requirement {
	var reqs []Requirement
	for _, u := range p.Requirements() {
		reqs = append(reqs, Requirement{
			Name:        u.Command,
			Command:     u.Command,
			Description: descriptions[u.Command],
			Optional:    u.Optional,
		})
	}
	if p.NeedsPermissionGrant() && strings.TrimSpace(elevation) != "" {
		reqs = append(reqs, Requirement{
			Name:        elevation,
			Command:     elevation,
			Description: "changes device permissions for --enable-port",
			Optional:    true,
		})
	}
	return reqs
}

// CheckBinaries looks every requirement up in PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		status.Command = strings.TrimSpace(req.Command)

		if status.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(status.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", status.Command)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// HostInfo collects basic host information.
func HostInfo(ctx context.Context) (Host, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Host{}, fmt.Errorf("reading host info: %w", err)
	}
	return Host{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Arch:            info.KernelArch,
	}, nil
}

// Run checks the platform's requirements and gathers host information.
func Run(ctx context.Context, p boardfinder.Platform, elevation string) Report {
	report := Report{
		Platform: p.Name(),
		Checks:   CheckBinaries(Requirements(p, elevation)),
	}
	report.Host, report.HostErr = HostInfo(ctx)
	return report
}
