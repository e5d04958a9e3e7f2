package weave

import "fmt"

// Version components of the junobox application. Suffix is empty for
// tagged releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit is set at build time:
//
//   go build -ldflags "-X github.com/iov-one/junobox/weave.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the application version, followed by the commit it was
// built from when known.
func Version() string {
	if GitCommit == "" {
		return version
	}
	return version + " " + GitCommit
}
