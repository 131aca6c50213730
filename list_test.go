package boardfinder

import (
	"os"
	"path/filepath"
	"testing"
)

// makeDevTree creates empty files standing in for device nodes.
func makeDevTree(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	return dir
}

func TestGlobCandidates(t *testing.T) {
	dir := makeDevTree(t, "ttyUSB1", "ttyUSB0", "ttyACM0", "tty", "tty0", "tty12", "ttyS0", "ttyprintk", "ttyp0", "null", "console")

	candidates, err := globCandidates(dir, "tty*", linuxExcludePatterns)
	if err != nil {
		t.Fatalf("globCandidates failed: %v", err)
	}

	expected := []string{"ttyACM0", "ttyS0", "ttyUSB0", "ttyUSB1"}
	if len(candidates) != len(expected) {
		t.Fatalf("expected %d candidates, got %d: %v", len(expected), len(candidates), candidates)
	}
	for i, name := range expected {
		if want := filepath.Join(dir, name); string(candidates[i]) != want {
			t.Errorf("candidate %d = %s, expected %s", i, candidates[i], want)
		}
	}
}

func TestGlobCandidatesDarwinPattern(t *testing.T) {
	dir := makeDevTree(t, "tty.usbserial-1410", "tty.Bluetooth-Incoming-Port", "cu.usbserial-1410", "ttys000")

	candidates, err := globCandidates(dir, "tty.*", nil)
	if err != nil {
		t.Fatalf("globCandidates failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", candidates)
	}
}

func TestGlobCandidatesEmptyDir(t *testing.T) {
	candidates, err := globCandidates(filepath.Join(t.TempDir(), "missing"), "tty*", nil)
	if err != nil {
		t.Fatalf("globCandidates failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %v", candidates)
	}
}

// TestTTYFiltering tests that we correctly filter different kinds of tty nodes
func TestTTYFiltering(t *testing.T) {
	tests := []struct {
		name     string
		excluded bool
	}{
		{"ttyUSB0", false},
		{"ttyUSB12", false},
		{"ttyACM0", false},
		{"ttyS0", false},
		{"ttyAMA0", false},
		{"ttyTHS1", false},
		{"tty", true},       // Controlling terminal
		{"tty1", true},      // Virtual terminal
		{"tty63", true},     // Virtual terminal
		{"ttyprintk", true}, // printk
		{"ttyp0", true},     // Legacy pty
		{"ttypf", true},     // Legacy pty
	}

	for _, test := range tests {
		if got := isExcluded(test.name, linuxExcludePatterns); got != test.excluded {
			t.Errorf("isExcluded(%s) = %v, expected %v", test.name, got, test.excluded)
		}
	}
}

func TestDedupe(t *testing.T) {
	in := []Candidate{"b", "a", "b", "c", "a"}
	out := dedupe(in)

	expected := []Candidate{"b", "a", "c"}
	if len(out) != len(expected) {
		t.Fatalf("dedupe() = %v, expected %v", out, expected)
	}
	for i := range expected {
		if out[i] != expected[i] {
			t.Errorf("dedupe()[%d] = %s, expected %s", i, out[i], expected[i])
		}
	}
}
