// Package feed queries the remote release feed for the latest Neovim release.
//
// The feed has no structured version field: the version is scraped from the
// second line of the free-text release body, and the artifact URL is taken
// from the first asset with the AppImage content type.
package feed
