// Package pathset implements the shared path-selection collaborator the
// filter core's "path" primitive defers to: Select registers a traced
// path, Match tests an event's path against every registered entry.
package pathset

import "strings"

// Set is a process-wide collection of traced paths. A path matches if
// it equals a registered entry or is lexically nested under one,
// mirroring how strace's path tracing treats a traced directory as
// covering everything beneath it.
type Set struct {
	paths []string
}

// New returns an empty path set.
func New() *Set {
	return &Set{}
}

// Select registers pattern as a traced path. Patterns are taken
// literally; no glob or regex expansion is performed.
func (s *Set) Select(pattern string) error {
	s.paths = append(s.paths, pattern)
	return nil
}

// Match reports whether path is, or is nested under, a registered entry.
func (s *Set) Match(path string) bool {
	for _, p := range s.paths {
		if path == p {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// Len reports how many patterns are currently registered.
func (s *Set) Len() int {
	return len(s.paths)
}
