// Package progress reports download progress.
//
// A terminal gets a redrawn bar; anything else gets a log line at every
// tenth of the download.
package progress
