package preflight

import (
	"fmt"
)

// CheckDiskSpace checks that the file system holding dir has need bytes
// free. A free-space figure that cannot be read is a warning.
func (c *Checker) CheckDiskSpace(dir string, need uint64) CheckResult {
	result := CheckResult{
		Name:     "disk_space",
		Required: true,
	}

	available, err := freeBytes(existingAncestor(dir))
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("could not check disk space: %v", err)
		return result
	}

	if available < need {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%s free (document needs about %s)",
			formatBytes(available), formatBytes(need))
		return result
	}

	result.Status = StatusPass
	result.Message = fmt.Sprintf("%s free", formatBytes(available))
	if need > 0 {
		result.Message += fmt.Sprintf(" (document needs about %s)", formatBytes(need))
	}
	return result
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
