package video

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// Enumerate recursively finds the video files under root whose names match
// patterns and returns them in traversal order. Identifiers must be unique
// within a run because each one owns an output directory.
func Enumerate(root string, patterns utils.PatternSet) ([]VideoSource, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.NotFoundError{Path: root, Err: err}
		}
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	var paths []string
	var err error

	// Use fd if available for better performance, otherwise fall back to filepath.WalkDir
	if isFdAvailable() {
		paths, err = findFilesWithFd(root, patterns)
		if err != nil {
			paths, err = findFilesWithWalkDir(root, patterns)
		}
	} else {
		paths, err = findFilesWithWalkDir(root, patterns)
	}
	if err != nil {
		return nil, err
	}

	sources := make([]VideoSource, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		id := utils.StripExt(p)
		if id == "" {
			// ".avi" and the like have no name to put frames under
			continue
		}
		if prev, dup := seen[id]; dup {
			return nil, &types.InvalidArgumentError{
				Arg:    "source",
				Reason: fmt.Sprintf("videos %s and %s share the identifier %q", prev, p, id),
			}
		}
		seen[id] = p
		sources = append(sources, VideoSource{ID: id, Path: p})
	}

	return sources, nil
}

// isFdAvailable checks if the 'fd' command is available in PATH
func isFdAvailable() bool {
	_, err := exec.LookPath("fd")
	return err == nil
}

// findFilesWithWalkDir uses filepath.WalkDir to find matching files (fallback method)
func findFilesWithWalkDir(root string, patterns utils.PatternSet) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &types.NotFoundError{Path: path, Err: err}
			}
			return err
		}

		if d.IsDir() {
			return nil
		}

		if patterns.Match(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// findFilesWithFd lists every regular file under root with 'fd' and filters them by patterns
func findFilesWithFd(root string, patterns utils.PatternSet) ([]string, error) {
	cmd := exec.Command("fd", "--type", "f", "--hidden", "--no-ignore", "--color", "never", ".", root)
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	var files []string
	for _, line := range lines {
		if line != "" && patterns.Match(line) {
			files = append(files, filepath.Clean(line))
		}
	}

	return files, nil
}
