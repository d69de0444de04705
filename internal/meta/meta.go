// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand names and directory layout in one place.
package meta

const (
	// Project Identity
	AppName     = "vessel"
	Version     = "0.1.0"
	EnvPrefix   = "VESSEL"
	ImagePrefix = "vessel"

	// Directory Layout
	HomeDir          = ".vessel"
	DefaultOutputDir = "./vessel-output"
	ScratchPattern   = "vessel-deploy-*"

	// Artifact file names
	ContainerFileName = "Dockerfile"
	ProxyConfigName   = "nginx.conf"
	// DeployProxyConfigName is written into the project root during deploy
	// so it never clobbers a user's own nginx.conf.
	DeployProxyConfigName = ".vessel-nginx.conf"
)
