// Package version reports build information for filemerge.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the binary name used in version output and log fields.
const AppName = "filemerge"

// Set at build time:
//
//	go build -ldflags "-X 'github.com/drengskapur/filemerge/pkg/version.Version=1.2.3' -X 'github.com/drengskapur/filemerge/pkg/version.Commit=abcdefg'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the information on one line, e.g.
//
//	filemerge version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.23.1 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s) built at %s with %s on %s",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
