// Package version holds the version strings reported by the sqwrap
// binaries.
package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// banner returns the one-line banner shared by the binaries.
func banner(tool string) string {
	return fmt.Sprintf("%ssqwrap %s %s%s", colorCyanBold, tool, Version, colorReset)
}

// CLIVersion returns the banner for the interactive shell.
func CLIVersion() string {
	return banner("shell")
}

// BenchVersion returns the banner for the benchmark tool.
func BenchVersion() string {
	return banner("bench")
}
