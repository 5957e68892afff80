package updater

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/nvim-updater/internal/config"
	"github.com/oshokin/nvim-updater/internal/domain/release"
	"github.com/oshokin/nvim-updater/internal/fault"
	"github.com/oshokin/nvim-updater/internal/feed"
	"github.com/oshokin/nvim-updater/internal/installer"
	"github.com/oshokin/nvim-updater/internal/logger"
	"github.com/oshokin/nvim-updater/internal/progress"
	"github.com/oshokin/nvim-updater/internal/repository/marker"
	"github.com/oshokin/nvim-updater/internal/service/procs"
)

// VersionStore reads and records the installed version.
type VersionStore interface {
	ReadCurrent(ctx context.Context, markerExists bool) (*semver.Version, error)
	WriteCurrent(ctx context.Context, v *semver.Version) error
}

// ReleaseFeed resolves the latest published release.
type ReleaseFeed interface {
	FetchLatest(ctx context.Context) (*release.Info, error)
}

// ArtifactInstaller downloads and installs the artifact.
type ArtifactInstaller interface {
	Download(ctx context.Context, downloadURL *url.URL) (*installer.Payload, error)
	Install(ctx context.Context, payload *installer.Payload, dest string) error
}

// Options are inputs accepted by the updater entry point.
type Options struct {
	// Config overrides the fixed configuration; nil means config.Default().
	Config *config.Config
	// HTTPClient is shared by the feed client and the installer; nil means a fresh client.
	HTTPClient *http.Client
	// Reporter receives download progress; nil discards it.
	Reporter progress.Reporter
}

// runner holds the collaborators of a single update run.
type runner struct {
	store         VersionStore
	feed          ReleaseFeed
	installer     ArtifactInstaller
	artifactPath  string
	listProcesses procs.Lister
}

// Run executes one update check and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) (release.Outcome, error) {
	ctx = logger.WithName(ctx, "nvim-updater")

	if opts == nil {
		opts = new(Options)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := config.Validate(cfg); err != nil {
		return 0, fmt.Errorf("validate configuration: %w", err)
	}

	// One client per run, handed to every component that talks to the network.
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = new(http.Client)
	}

	hasPriorInstall, err := DetectInstallation(ctx, cfg.ArtifactPath, cfg.MarkerPath)
	if err != nil {
		return 0, err
	}

	u := &runner{
		store:        marker.NewFileRepository(cfg.MarkerPath),
		feed:         feed.NewClient(httpClient, cfg.FeedURL, cfg.UserAgent, cfg.AssetContentType),
		installer:    installer.New(httpClient, cfg.UserAgent, cfg.ChunkSize, opts.Reporter),
		artifactPath: cfg.ArtifactPath,
	}

	return u.run(ctx, hasPriorInstall)
}

// run resolves current and latest versions concurrently and acts on the comparison.
func (u *runner) run(ctx context.Context, hasPriorInstall bool) (release.Outcome, error) {
	current, latest, err := u.resolveVersions(ctx, hasPriorInstall)
	if err != nil {
		return 0, err
	}

	switch latest.Version.Compare(current) {
	case 0:
		logger.InfoKV(ctx, "Neovim is up to date", "version", "v"+current.String())

		return release.UpToDate, nil
	case 1:
		if err = u.upgrade(ctx, latest); err != nil {
			return 0, err
		}

		return release.Upgraded, nil
	default:
		return 0, fault.New(fault.KindInconsistentState,
			fmt.Sprintf("installed version %s is newer than the latest release %s", current, latest.Version))
	}
}

// resolveVersions joins the marker read and the feed query.
// The first failure wins and the other result is discarded.
func (u *runner) resolveVersions(ctx context.Context, hasPriorInstall bool) (*semver.Version, *release.Info, error) {
	var (
		current *semver.Version
		latest  *release.Info
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		v, err := u.store.ReadCurrent(groupCtx, hasPriorInstall)
		if err != nil {
			return fmt.Errorf("get current version: %w", err)
		}

		current = v

		return nil
	})

	group.Go(func() error {
		info, err := u.feed.FetchLatest(groupCtx)
		if err != nil {
			return fmt.Errorf("get latest release: %w", err)
		}

		latest = info

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return current, latest, nil
}

// upgrade installs the latest artifact, then records its version.
func (u *runner) upgrade(ctx context.Context, latest *release.Info) error {
	u.warnIfRunning(ctx)

	logger.InfoKV(ctx, "Downloading latest version", "version", "v"+latest.Version.String())

	payload, err := u.installer.Download(ctx, latest.DownloadURL)
	if err != nil {
		return fmt.Errorf("download %s: %w", filepath.Base(u.artifactPath), err)
	}

	if err = u.installer.Install(ctx, payload, u.artifactPath); err != nil {
		return fmt.Errorf("install %s: %w", u.artifactPath, err)
	}

	if err = u.store.WriteCurrent(ctx, latest.Version); err != nil {
		return fmt.Errorf("record new version: %w", err)
	}

	logger.Info(ctx, "Done")

	return nil
}

// warnIfRunning logs when the artifact is currently executing.
func (u *runner) warnIfRunning(ctx context.Context) {
	pids, err := procs.Running(u.listProcesses, filepath.Base(u.artifactPath))
	if err != nil {
		logger.DebugKV(ctx, "Could not inspect running processes", "error", err)
		return
	}

	if len(pids) > 0 {
		logger.WarnKV(ctx, "Neovim is running, restart it to use the new version", "pids", pids)
	}
}
