package installer

import (
	"context"
	"crypto"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/nvim-updater/internal/config"
	"github.com/oshokin/nvim-updater/internal/fault"
	"github.com/oshokin/nvim-updater/internal/logger"
	"github.com/oshokin/nvim-updater/internal/progress"
)

// checksumFunction hashes the streamed payload for go-update verification.
const checksumFunction = crypto.SHA512

var (
	errBadHTTPStatus    = errors.New("unexpected http status")
	errNoContentLength  = errors.New("response has no content length")
	errPayloadNotSet    = errors.New("payload is not set")
	errChunkSizeInvalid = errors.New("chunk size must be positive")
)

// Payload is an open artifact download.
type Payload struct {
	// Body streams the artifact bytes. Install closes it.
	Body io.ReadCloser
	// Size is the total expected length in bytes.
	Size int64
}

// Installer streams artifacts from the network onto storage.
type Installer struct {
	// httpClient is shared with the feed client for the duration of one run.
	httpClient *http.Client
	// userAgent is sent with the download request.
	userAgent string
	// chunkSize bounds each read from the payload.
	chunkSize int
	// reporter receives cumulative bytes written.
	reporter progress.Reporter
	// chmod sets the final mode of the installed artifact.
	chmod func(name string, mode os.FileMode) error
}

// New creates an installer. A nil reporter discards progress.
func New(httpClient *http.Client, userAgent string, chunkSize int, reporter progress.Reporter) *Installer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if reporter == nil {
		reporter = progress.Nop{}
	}

	return &Installer{
		httpClient: httpClient,
		userAgent:  userAgent,
		chunkSize:  chunkSize,
		reporter:   reporter,
		chmod:      os.Chmod,
	}
}

// Download opens a streamed GET for downloadURL.
// The response must announce its length so progress can be reported against it.
func (i *Installer) Download(ctx context.Context, downloadURL *url.URL) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL.String(), http.NoBody)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "build download request", err)
	}

	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "download GET request", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()

		return nil, fault.Wrap(fault.KindNetwork, "download GET request",
			fmt.Errorf("%s, %s: %w", downloadURL, resp.Status, errBadHTTPStatus))
	}

	if resp.ContentLength < 0 {
		_ = resp.Body.Close()

		return nil, fault.Wrap(fault.KindNetwork, "determine download size", errNoContentLength)
	}

	logger.DebugKV(ctx, "Download opened", "url", downloadURL.String(), "size", resp.ContentLength)

	return &Payload{
		Body: resp.Body,
		Size: resp.ContentLength,
	}, nil
}

// Install writes payload to dest and makes it executable.
func (i *Installer) Install(ctx context.Context, payload *Payload, dest string) error {
	if payload == nil || payload.Body == nil {
		return fault.Wrap(fault.KindIO, "install artifact", errPayloadNotSet)
	}

	defer func() {
		_ = payload.Body.Close()
	}()

	if i.chunkSize <= 0 {
		return fault.Wrap(fault.KindIO, "install artifact", errChunkSizeInvalid)
	}

	dest = filepath.Clean(dest)
	stagingPath := StagingPath(dest)

	checksum, err := i.stream(ctx, payload, stagingPath)
	if err != nil {
		return err
	}

	if err = apply(stagingPath, dest, checksum); err != nil {
		return err
	}

	if err = i.chmod(dest, config.ExecutableFileMode); err != nil {
		return fault.Wrap(fault.KindPermission, "set file permissions for "+dest, err)
	}

	if err = os.Remove(stagingPath); err != nil {
		logger.WarnKV(ctx, "Could not remove staging file", "path", stagingPath, "error", err)
	}

	logger.DebugKV(ctx, "Artifact installed", "path", dest)

	return nil
}

// stream copies the payload into the staging file chunk by chunk.
// Each chunk is written before the next one is read.
func (i *Installer) stream(ctx context.Context, payload *Payload, stagingPath string) ([]byte, error) {
	//nolint:gosec // The staging path is derived from the fixed artifact path.
	staging, err := os.OpenFile(stagingPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.DefaultFilePermissions)
	if err != nil {
		return nil, fault.Wrap(fault.KindIO, "open staging file "+stagingPath, err)
	}

	defer func() {
		_ = staging.Close()
	}()

	var (
		hasher  = sha512.New()
		buffer  = make([]byte, i.chunkSize)
		total   = payload.Size
		written int64
	)

	i.reporter.Start(ctx, total)

	for {
		n, readErr := payload.Body.Read(buffer)
		if n > 0 {
			chunk := buffer[:n]

			if _, err = staging.Write(chunk); err != nil {
				return nil, fault.Wrap(fault.KindIO, "write to "+stagingPath, err)
			}

			_, _ = hasher.Write(chunk)
			written += int64(n)

			i.reporter.Update(ctx, min(written, total))
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fault.Wrap(fault.KindNetwork, "read download stream", readErr)
		}
	}

	i.reporter.Finish(ctx)

	if err = staging.Close(); err != nil {
		return nil, fault.Wrap(fault.KindIO, "close staging file "+stagingPath, err)
	}

	return hasher.Sum(nil), nil
}

// apply moves the staged bytes over dest using go-update.
func apply(stagingPath, dest string, checksum []byte) error {
	// go-update renames the current target aside, so it has to exist.
	if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
		created, createErr := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY, config.DefaultFilePermissions)
		if createErr != nil {
			return fault.Wrap(fault.KindIO, "create "+dest, createErr)
		}

		_ = created.Close()
	}

	staged, err := os.Open(stagingPath) //nolint:gosec // Derived from the fixed artifact path.
	if err != nil {
		return fault.Wrap(fault.KindIO, "open staging file "+stagingPath, err)
	}

	defer func() {
		_ = staged.Close()
	}()

	options := goupdate.Options{
		TargetPath: dest,
		TargetMode: config.ExecutableFileMode,
		Checksum:   checksum,
		Hash:       checksumFunction,
	}

	if err = goupdate.Apply(staged, options); err != nil {
		return fault.Wrap(fault.KindIO, "apply update to "+dest, err)
	}

	return nil
}

// StagingPath returns the hidden file the payload is streamed into before it is applied.
func StagingPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".part")
}
