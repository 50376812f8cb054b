package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// FFmpegTools are the binaries frame extraction shells out to
var FFmpegTools = []string{"ffprobe", "ffmpeg"}

// ValidateFFmpegDependencies checks if ffmpeg and ffprobe are available in PATH
func ValidateFFmpegDependencies() error {
	return RequireTools(FFmpegTools...)
}

// RequireTools fails on the first tool that cannot be found in PATH
func RequireTools(tools ...string) error {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found in PATH. %s", tool, getInstallationInstructions())
		}
	}
	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or dnf install ffmpeg (Fedora/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
