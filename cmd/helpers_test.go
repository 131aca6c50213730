/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/settings"
	"github.com/rs/zerolog"
)

type stubPlatform struct {
	name         string
	candidates   []boardfinder.Candidate
	descriptions map[boardfinder.Candidate]string
}

func (s *stubPlatform) Name() string { return s.name }

func (s *stubPlatform) ListCandidates(context.Context) ([]boardfinder.Candidate, error) {
	return s.candidates, nil
}

func (s *stubPlatform) Describe(_ context.Context, c boardfinder.Candidate) (string, error) {
	desc, ok := s.descriptions[c]
	if !ok {
		return "", &boardfinder.CommandError{Name: "udevadm", Err: errors.New("exit status 4")}
	}
	return desc, nil
}

func (s *stubPlatform) ReportsUSBIDs() bool        { return s.name != "Windows" }
func (s *stubPlatform) NeedsPermissionGrant() bool { return s.name != "Windows" }
func (s *stubPlatform) Requirements() []boardfinder.Utility {
	return nil
}

func usbDescription(product, vendor, productID string) string {
	return "  looking at parent device '/devices/pci0000:00/0000:00:14.0/usb1/1-2':\n" +
		"    ATTRS{idProduct}==\"" + productID + "\"\n" +
		"    ATTRS{idVendor}==\"" + vendor + "\"\n" +
		"    ATTRS{product}==\"" + product + "\"\n"
}

// rejectingSudo fails every elevated command like sudo given a wrong password.
type rejectingSudo struct {
	calls [][]string
}

func (r *rejectingSudo) Run(_ context.Context, _ io.Reader, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil, &boardfinder.CommandError{
		Name:   name,
		Args:   args,
		Stderr: "Sorry, try again.",
		Err:    errors.New("exit status 1"),
	}
}

func newTestApp(t *testing.T, platform boardfinder.Platform, devDir string) (*application, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &application{
		settings: settings.Settings{
			DevDir:         devDir,
			CommandTimeout: time.Second,
			Elevation:      settings.Elevation{Command: "sudo", Mode: "0666"},
		},
		logger:   zerolog.Nop(),
		table:    boardfinder.DefaultTable(),
		platform: platform,
		runner:   &rejectingSudo{},
		stdin:    strings.NewReader(""),
		stdout:   &stdout,
		stderr:   &stderr,
	}
	return a, &stdout, &stderr
}
