package boardfinder

import (
	"path/filepath"
	"regexp"
)

// Exclude patterns for virtual terminals and other non-serial tty nodes
var linuxExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty$`),          // Controlling terminal
	regexp.MustCompile(`^tty\d+$`),       // Virtual terminals (tty1, tty2, etc.)
	regexp.MustCompile(`^ttyprintk$`),    // printk pseudo device
	regexp.MustCompile(`^ttyp[0-9a-f]$`), // Legacy BSD pseudo-terminals
}

// globCandidates lists device nodes in dir matching pattern, skipping names
// that match any exclude pattern. Glob results are lexically sorted.
func globCandidates(dir, pattern string, exclude []*regexp.Regexp) ([]Candidate, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(matches))
	for _, path := range matches {
		if isExcluded(filepath.Base(path), exclude) {
			continue
		}
		candidates = append(candidates, Candidate(path))
	}
	return dedupe(candidates), nil
}

func isExcluded(name string, exclude []*regexp.Regexp) bool {
	for _, p := range exclude {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// dedupe drops repeated candidates, keeping the first occurrence.
func dedupe(candidates []Candidate) []Candidate {
	seen := make(map[Candidate]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
