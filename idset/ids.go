// Package idset derives, splits, joins and materializes the identifier lists
// that tie a VOC-style dataset's images, annotations and partitions together.
package idset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// File names used for the persisted lists
const (
	TrainvalFile = "trainval.txt"
	TestFile     = "test.txt"
	IDsFile      = "ids.txt"
)

// DefaultAnnoPatterns matches PASCAL-VOC annotation files
var DefaultAnnoPatterns = utils.MustPatterns("*.xml")

// Derive lists annoDir (non-recursively), keeps the files matching patterns
// and returns their base names without extension in ascending order.
func Derive(annoDir string, patterns utils.PatternSet) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultAnnoPatterns
	}

	names, err := utils.ListFiles(annoDir)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if !patterns.Match(name) {
			continue
		}
		// hidden files like ".xml" have no identifier
		if id := utils.StripExt(name); id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadFile reads one identifier per line. Only the line terminator (\n or
// \r\n) is removed; empty lines are skipped.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open id list: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// WriteFile atomically writes ids, one per line, each newline-terminated.
// Identifiers that could not be read back unchanged are rejected.
func WriteFile(path string, ids []string) error {
	var buf bytes.Buffer
	for _, id := range ids {
		if id == "" || strings.ContainsAny(id, "\r\n") {
			return &types.InvalidArgumentError{Arg: "identifier", Reason: fmt.Sprintf("%q cannot be stored one per line", id)}
		}
		buf.WriteString(id)
		buf.WriteByte('\n')
	}
	return utils.WriteFileAtomic(path, buf.Bytes())
}
