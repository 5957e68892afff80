// Package procs inspects the process table.
//
// The updater uses it to warn when the artifact it is about to replace is
// currently running; the running copy keeps its old image until restarted.
package procs
