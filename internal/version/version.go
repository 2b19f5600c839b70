// Package version reports build information and checks for newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Build information, injected with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	// DefaultReleaseURL is the GitHub API endpoint for the latest release.
	DefaultReleaseURL = "https://api.github.com/repos/plantingplanner/planner-tui/releases/latest"
	httpTimeout       = 5 * time.Second
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("planner-tui version %s (commit: %s, built: %s, %s %s)",
		i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}

// UpdateInfo is the result of a release check.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker asks GitHub for the latest release.
type Checker struct {
	currentVersion string
	apiURL         string
	httpClient     *http.Client
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithReleaseURL points the checker at another release endpoint.
func WithReleaseURL(url string) CheckerOption {
	return func(c *Checker) { c.apiURL = url }
}

// NewChecker creates a checker for currentVersion.
func NewChecker(currentVersion string, opts ...CheckerOption) *Checker {
	c := &Checker{
		currentVersion: currentVersion,
		apiURL:         DefaultReleaseURL,
		httpClient:     &http.Client{Timeout: httpTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckForUpdate fetches the latest release. Development builds are never
// checked and report no update.
func (c *Checker) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	info := &UpdateInfo{CurrentVersion: c.currentVersion}
	if c.currentVersion == "" || c.currentVersion == "dev" {
		return info, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to parse release response: %w", err)
	}

	info.LatestVersion = release.TagName
	info.ReleaseURL = release.HTMLURL
	info.UpdateAvailable = IsNewer(release.TagName, c.currentVersion)
	return info, nil
}

// IsNewer reports whether latest is a strictly greater semantic version than
// current. Anything that does not parse as semver is never newer.
func IsNewer(latest, current string) bool {
	l, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	c, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	return l.GreaterThan(c)
}
