package video

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/vocprep/types"
	"github.com/lepinkainen/vocprep/utils"
)

// DefaultPatterns are the video extensions enumerated when none are configured
var DefaultPatterns = utils.MustPatterns("*.mp4", "*.webm", "*.mov", "*.flv", "*.mkv", "*.avi", "*.wmv", "*.mpg")

// IsVideoFile checks the file name against the default video patterns
func IsVideoFile(path string) bool {
	return DefaultPatterns.Match(path)
}

// corruptionIndicators are ffmpeg/ffprobe diagnostics that mean the stream itself is bad
var corruptionIndicators = []string{
	"moov atom not found",
	"Invalid data found",
	"corrupt",
	"truncated",
	"Invalid argument",
	"could not find codec parameters",
	"End of file",
}

// classifyToolError turns a failed ffmpeg/ffprobe run into a DecodeError,
// keeping the first line of the tool's diagnostics.
func classifyToolError(path string, err error, output string) error {
	first := extractFirstLine(output)
	for _, indicator := range corruptionIndicators {
		if strings.Contains(strings.ToLower(output), strings.ToLower(indicator)) {
			return &types.DecodeError{Path: path, Err: fmt.Errorf("video file is corrupted or invalid: %s", first)}
		}
	}
	return &types.DecodeError{Path: path, Err: fmt.Errorf("%w: %s", err, first)}
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}
