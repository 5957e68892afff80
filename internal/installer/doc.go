// Package installer downloads the release artifact and installs it as an
// executable.
//
// The payload is streamed chunk by chunk into a hidden staging file next to
// the destination while progress is reported. The staged bytes are then
// applied with go-update, verified against the checksum computed while
// streaming, and the destination is made executable. A failed transfer leaves
// the partial, non-executable staging file behind and the installed artifact
// untouched.
package installer
