// Package cli implements hfctl, a command-line front-end for the Hoverfly
// admin API built on pkg/client.
//
// Commands register themselves on the cobra root command in their init
// functions. Every command honours --json: only machine-readable output is
// written to stdout, human-oriented messages go to stderr.
package cli
