// Package marker implements persistence for the installed version marker.
//
// The FileRepository keeps the canonical semantic version string of the
// installed artifact in a plain text file and exposes a Repository interface
// that the update orchestrator depends on.
package marker
