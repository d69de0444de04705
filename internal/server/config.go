// Where: internal/server/config.go
// What: HTTP facade configuration.
// Why: Read the environment once in main and pass values down explicitly.
package server

import (
	"fmt"

	"github.com/vessel-dev/vessel/internal/envutil"
	"github.com/vessel-dev/vessel/internal/github"
	"github.com/vessel-dev/vessel/internal/scanner"
)

const (
	DefaultPort      = 5000
	DefaultIssuesDir = "./data"
)

// Config holds everything the facade reads from the environment.
type Config struct {
	Port           int
	GitHubToken    string
	GitHubAPIURL   string
	ScannerAPIKey  string
	ScannerAPIURL  string
	ScannerRPS     float64
	IssuesDir      string
	IssuesS3Bucket string
	IssuesS3Prefix string

	// S3-compatible overrides; empty values use the default AWS chain.
	IssuesS3Region    string
	IssuesS3Endpoint  string
	IssuesS3AccessKey string
	IssuesS3SecretKey string
}

// ConfigFromEnv builds a Config from process environment variables.
func ConfigFromEnv() Config {
	return Config{
		Port:           envutil.GetInt("PORT", DefaultPort),
		GitHubToken:    envutil.GetString("GITHUB_API_TOKEN", ""),
		GitHubAPIURL:   envutil.GetString(envutil.HostEnvKey("GITHUB_API_URL"), github.DefaultBaseURL),
		ScannerAPIKey:  envutil.GetString("PENSAR_API_KEY", ""),
		ScannerAPIURL:  envutil.GetString(envutil.HostEnvKey("SCANNER_API_URL"), scanner.DefaultBaseURL),
		ScannerRPS:     envutil.GetFloat(envutil.HostEnvKey("SCANNER_RPS"), 0),
		IssuesDir:      envutil.GetString(envutil.HostEnvKey("ISSUES_DIR"), DefaultIssuesDir),
		IssuesS3Bucket: envutil.GetHostEnv("ISSUES_S3_BUCKET"),
		IssuesS3Prefix: envutil.GetHostEnv("ISSUES_S3_PREFIX"),

		IssuesS3Region:    envutil.GetHostEnv("ISSUES_S3_REGION"),
		IssuesS3Endpoint:  envutil.GetHostEnv("ISSUES_S3_ENDPOINT"),
		IssuesS3AccessKey: envutil.GetHostEnv("ISSUES_S3_ACCESS_KEY"),
		IssuesS3SecretKey: envutil.GetHostEnv("ISSUES_S3_SECRET_KEY"),
	}
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
