// Package updater decides whether the installed Neovim AppImage is current and
// upgrades it when a newer release is published.
//
// It reads the recorded version and queries the release feed concurrently,
// compares the two, and on a newer release downloads and installs the
// artifact before recording the new version. The version marker is written
// only after the artifact is in place and executable.
package updater
