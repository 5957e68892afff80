package release

import (
	"net/url"

	"github.com/Masterminds/semver/v3"
)

// noneInstalled is the version string reported when nothing is installed yet.
const noneInstalled = "0.0.0"

// Asset is one downloadable file listed by the release feed.
type Asset struct {
	// ContentType is the MIME type reported by the feed.
	ContentType string `json:"content_type"`
	// DownloadURL is the direct download link for the asset.
	DownloadURL string `json:"browser_download_url"`
}

// Info is the latest release as seen by the feed.
type Info struct {
	// Version is the release version scraped from the release body.
	Version *semver.Version
	// DownloadURL points at the selected artifact asset.
	DownloadURL *url.URL
}

// Outcome is the terminal state of a successful run.
type Outcome int

const (
	// UpToDate means the installed version already matches the latest release.
	UpToDate Outcome = iota + 1
	// Upgraded means the latest release was downloaded, installed and recorded.
	Upgraded
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case Upgraded:
		return "upgraded"
	default:
		return "unknown"
	}
}

// NoneInstalled returns the sentinel version that stands for "no prior installation".
func NoneInstalled() *semver.Version {
	return semver.MustParse(noneInstalled)
}

// ParseVersion parses s as a strict semantic version: no "v" prefix,
// no surrounding whitespace, all three numeric components present.
func ParseVersion(s string) (*semver.Version, error) {
	return semver.StrictNewVersion(s)
}
