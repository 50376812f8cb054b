package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PatternSet is a list of shell globs matched case-insensitively against a
// file's base name, e.g. {"*.avi", "*.mp4"}.
type PatternSet []string

// ParsePatterns normalizes globs and bare extensions ("avi", ".avi") into a PatternSet
func ParsePatterns(raw []string) (PatternSet, error) {
	var set PatternSet
	for _, r := range raw {
		for _, p := range strings.Split(r, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !strings.ContainsAny(p, "*?[") {
				p = "*." + strings.TrimPrefix(p, ".")
			}
			p = strings.ToLower(p)
			if _, err := filepath.Match(p, ""); err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", p, err)
			}
			set = append(set, p)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no file patterns given")
	}
	return set, nil
}

// MustPatterns is ParsePatterns for literals known to be valid
func MustPatterns(raw ...string) PatternSet {
	set, err := ParsePatterns(raw)
	if err != nil {
		panic(err)
	}
	return set
}

// Match reports whether the base name of path matches any pattern
func (s PatternSet) Match(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, p := range s {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// StripExt returns the base name of path without its final extension
func StripExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NormalizeExt returns ext with a leading dot; empty stays empty
func NormalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
