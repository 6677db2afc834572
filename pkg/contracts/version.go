// Package contracts holds values shared by every binary of the normalizer.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the normalizer
	Version = "1.2.0"

	// VersionPrerelease is the pre-release identifier
	VersionPrerelease = ""

	// OutputFormatVersion tracks the derived column layout (date, hora,
	// hora_original) written to cleaned files
	OutputFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	OutputFormat string `json:"output_format"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		OutputFormat: OutputFormatVersion,
	}
}

// GetVersionString returns a formatted version string for the named tool
func GetVersionString(tool string) string {
	return fmt.Sprintf("%s-normalizer v%s", tool, Version)
}

// GetFullVersionString returns a detailed version string
func GetFullVersionString(tool string) string {
	info := GetVersionInfo()
	return fmt.Sprintf(
		"%s (built: %s, commit: %s, go: %s, os: %s/%s, output: %s)",
		GetVersionString(tool),
		info.BuildTime,
		info.GitCommit,
		info.GoVersion,
		info.OS,
		info.Architecture,
		info.OutputFormat,
	)
}

// IsPrerelease returns true if this is a pre-release version
func IsPrerelease() bool {
	return VersionPrerelease != ""
}
