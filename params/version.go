package params

import "fmt"

const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
	VersionMeta  = "unstable"
)

// Version holds the textual version string.
func Version() string {
	return fmt.Sprintf("%d.%d.%d-%s", VersionMajor, VersionMinor, VersionPatch, VersionMeta)
}

func VersionWithCommit(gitCommit, gitDate string) string {
	version := Version()
	if len(gitCommit) >= 8 {
		version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		version += "-" + gitDate
	}
	return version
}
