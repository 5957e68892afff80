// Package fault classifies update failures.
//
// Every failure raised by the core carries a Kind, the operation that failed and
// an optional cause. Chain splits a wrapped error into its context messages so
// the command line can print the whole causal chain.
package fault
