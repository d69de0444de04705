// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report the release version together with the VCS revision it was built from.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/vessel-dev/vessel/internal/meta"
)

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version, followed by the short VCS revision
// when build info carries one. A modified tree is flagged with "(dirty)".
func GetVersion() string {
	info, ok := readBuildInfo()
	if !ok {
		return meta.Version
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return meta.Version
	}

	if modified {
		return fmt.Sprintf("%s (%s, dirty)", meta.Version, revision)
	}
	return fmt.Sprintf("%s (%s)", meta.Version, revision)
}
