package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config groups the fixed locations and feed parameters used by the updater.
// The values never come from disk or the environment; Default is the only source.
type Config struct {
	// ArtifactPath is where the executable artifact is installed.
	ArtifactPath string `yaml:"artifact_path"`
	// MarkerPath stores the version string of the installed artifact.
	MarkerPath string `yaml:"marker_path"`
	// FeedURL is the release feed endpoint returning the latest release.
	FeedURL string `yaml:"feed_url"`
	// UserAgent is sent with every request; the feed rejects anonymous clients.
	UserAgent string `yaml:"user_agent"`
	// AssetContentType selects the artifact among the release assets.
	AssetContentType string `yaml:"asset_content_type"`
	// ChunkSize bounds each read from the download stream.
	ChunkSize int `yaml:"chunk_size"`
	// LogLevel is the minimum level of status messages.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultArtifactPath is the installed AppImage location.
	DefaultArtifactPath = "/opt/neovim/nvim.appimage"

	// DefaultMarkerPath is the current version marker location.
	DefaultMarkerPath = "/opt/neovim/current_version"

	// DefaultFeedURL is the GitHub latest release endpoint for Neovim.
	DefaultFeedURL = "https://api.github.com/repos/neovim/neovim/releases/latest"

	// DefaultUserAgent is the literal User-Agent the feed accepts.
	DefaultUserAgent = "request"

	// DefaultAssetContentType is the MIME type of the AppImage asset.
	DefaultAssetContentType = "application/vnd.appimage"

	// DefaultChunkSize is the download read buffer size.
	DefaultChunkSize = 32 * 1024

	// DefaultLogLevel keeps status messages visible.
	DefaultLogLevel = "info"

	// ExecutableFileMode is applied to the installed artifact.
	ExecutableFileMode = 0o755

	// DefaultFilePermissions is used for the marker and staging files.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errPathRequired is returned when an installation path is missing or relative.
	errPathRequired = errors.New("absolute path must be provided")
	// errUserAgentRequired is returned when the user agent is empty.
	errUserAgentRequired = errors.New("user agent must be provided")
	// errContentTypeRequired is returned when the asset content type is empty.
	errContentTypeRequired = errors.New("asset content type must be provided")
)

// Default returns the fixed configuration.
func Default() *Config {
	return &Config{
		ArtifactPath:     DefaultArtifactPath,
		MarkerPath:       DefaultMarkerPath,
		FeedURL:          DefaultFeedURL,
		UserAgent:        DefaultUserAgent,
		AssetContentType: DefaultAssetContentType,
		ChunkSize:        DefaultChunkSize,
		LogLevel:         DefaultLogLevel,
	}
}

// Validate checks the provided settings for required fields and formatting.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if !filepath.IsAbs(cfg.ArtifactPath) {
		return fmt.Errorf("artifact path %q: %w", cfg.ArtifactPath, errPathRequired)
	}

	if !filepath.IsAbs(cfg.MarkerPath) {
		return fmt.Errorf("marker path %q: %w", cfg.MarkerPath, errPathRequired)
	}

	if _, err := url.ParseRequestURI(cfg.FeedURL); err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	if cfg.UserAgent == "" {
		return errUserAgentRequired
	}

	if cfg.AssetContentType == "" {
		return errContentTypeRequired
	}

	// Set default chunk size if not specified.
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errConfigIsNotSet
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}

	return data, nil
}
