package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/oshokin/nvim-updater/internal/domain/release"
	"github.com/oshokin/nvim-updater/internal/fault"
	"github.com/oshokin/nvim-updater/internal/logger"
)

const (
	// versionPrefix precedes the version token in the release body.
	versionPrefix = "v"
	// acceptHeader asks GitHub for its stable JSON media type.
	acceptHeader = "application/vnd.github+json"
)

var (
	errBadHTTPStatus = errors.New("unexpected http status")
	errMissingField  = errors.New("missing required field")
	errTrailingData  = errors.New("unexpected data after release object")
)

// Response is the subset of the feed payload the updater relies on.
type Response struct {
	// Assets lists the downloadable files in feed order.
	Assets []release.Asset `json:"assets"`
	// Body is the free-text release description.
	Body string `json:"body"`
}

// payload mirrors Response with pointer fields so absent and null members
// can be told apart from empty ones.
type payload struct {
	Assets *[]assetPayload `json:"assets"`
	Body   *string         `json:"body"`
}

type assetPayload struct {
	ContentType *string `json:"content_type"`
	DownloadURL *string `json:"browser_download_url"`
}

// Client fetches the latest release description.
type Client struct {
	// httpClient is shared with the installer for the duration of one run.
	httpClient *http.Client
	// feedURL is the latest release endpoint.
	feedURL string
	// userAgent is sent with every request.
	userAgent string
	// contentType selects the artifact asset.
	contentType string
}

// NewClient creates a feed client bound to the provided HTTP client.
func NewClient(httpClient *http.Client, feedURL, userAgent, contentType string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient:  httpClient,
		feedURL:     feedURL,
		userAgent:   userAgent,
		contentType: contentType,
	}
}

// FetchLatest queries the feed once and extracts the latest version and artifact URL.
func (c *Client) FetchLatest(ctx context.Context) (*release.Info, error) {
	logger.Info(ctx, "Polling Neovim GitHub releases API")

	response, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := ExtractVersion(response.Body)
	if err != nil {
		return nil, err
	}

	downloadURL, err := SelectAsset(response.Assets, c.contentType)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Latest release resolved", "version", latest.String(), "url", downloadURL.String())

	return &release.Info{
		Version:     latest,
		DownloadURL: downloadURL,
	}, nil
}

// fetch performs the GET request and decodes the JSON body.
func (c *Client) fetch(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "build feed request", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "request release feed", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fault.Wrap(fault.KindNetwork, "request release feed",
			fmt.Errorf("%s, %s: %w", c.feedURL, resp.Status, errBadHTTPStatus))
	}

	response, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, fault.Wrap(fault.KindDecode, "decode release feed", err)
	}

	return response, nil
}

// decodeResponse reads exactly one release object and requires every field
// the updater relies on to be present and non-null.
func decodeResponse(r io.Reader) (*Response, error) {
	dec := json.NewDecoder(r)

	var raw payload
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	if raw.Assets == nil {
		return nil, fmt.Errorf("assets: %w", errMissingField)
	}

	if raw.Body == nil {
		return nil, fmt.Errorf("body: %w", errMissingField)
	}

	assets := make([]release.Asset, 0, len(*raw.Assets))

	for i, asset := range *raw.Assets {
		if asset.ContentType == nil {
			return nil, fmt.Errorf("assets[%d].content_type: %w", i, errMissingField)
		}

		if asset.DownloadURL == nil {
			return nil, fmt.Errorf("assets[%d].browser_download_url: %w", i, errMissingField)
		}

		assets = append(assets, release.Asset{
			ContentType: *asset.ContentType,
			DownloadURL: *asset.DownloadURL,
		})
	}

	return &Response{
		Assets: assets,
		Body:   *raw.Body,
	}, nil
}

// ExtractVersion scrapes the release version from the feed body:
// second line, second space-separated token, "v" prefix stripped.
func ExtractVersion(body string) (*semver.Version, error) {
	// A single trailing line break does not start another line.
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	if len(lines) < 2 {
		return nil, fault.New(fault.KindFormat, "missing second line of release body")
	}

	line := strings.TrimSuffix(lines[1], "\r")

	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return nil, fault.New(fault.KindFormat, "missing second token of second line of release body")
	}

	raw, found := strings.CutPrefix(tokens[1], versionPrefix)
	if !found {
		return nil, fault.New(fault.KindFormat, fmt.Sprintf("token %q lacks %q prefix", tokens[1], versionPrefix))
	}

	latest, err := release.ParseVersion(raw)
	if err != nil {
		return nil, fault.Wrap(fault.KindParse, "parse version from release body", err)
	}

	return latest, nil
}

// SelectAsset returns the download URL of the first asset whose content type
// equals contentType. Later matches are ignored.
func SelectAsset(assets []release.Asset, contentType string) (*url.URL, error) {
	for _, asset := range assets {
		if asset.ContentType != contentType {
			continue
		}

		downloadURL, err := url.Parse(asset.DownloadURL)
		if err != nil {
			return nil, fault.Wrap(fault.KindDecode, "parse asset download URL", err)
		}

		if !downloadURL.IsAbs() || downloadURL.Host == "" {
			return nil, fault.New(fault.KindDecode, fmt.Sprintf("asset download URL %q is not absolute", asset.DownloadURL))
		}

		return downloadURL, nil
	}

	return nil, fault.New(fault.KindNotFound, fmt.Sprintf("no release asset with content type %q", contentType))
}
