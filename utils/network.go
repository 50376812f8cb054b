package utils

import (
	"path/filepath"
	"strings"
)

// networkPrefixes are common mount points for NFS/SMB shares
var networkPrefixes = []string{
	"/mnt/",     // Linux NFS/SMB mounts
	"/media/",   // Linux removable/network media
	"/Volumes/", // macOS network volumes
}

var networkIndicators = []string{"nfs", "cifs", "smb", "webdav", "ftp", "sftp"}

// IsNetworkDrive detects if a file path is on a network-mounted drive
func IsNetworkDrive(filePath string) bool {
	// UNC paths must be checked before filepath.Abs rewrites them
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range networkIndicators {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}

// AnyOnNetworkDrive reports whether any of the paths is network-mounted.
// Parallel decoding against a network share mostly just thrashes the link.
func AnyOnNetworkDrive(paths ...string) bool {
	for _, p := range paths {
		if IsNetworkDrive(p) {
			return true
		}
	}
	return false
}

// DefaultWorkers picks the extraction worker count when none was requested
func DefaultWorkers(requested, numCPU int, paths ...string) int {
	if requested > 0 {
		return requested
	}
	if AnyOnNetworkDrive(paths...) {
		return 1
	}
	if numCPU < 1 {
		return 1
	}
	return numCPU
}
