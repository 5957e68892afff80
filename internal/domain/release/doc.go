// Package release holds the release model shared by the feed client, the
// version store and the update orchestrator.
package release
