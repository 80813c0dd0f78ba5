// Package main hosts the sharecut CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds a logger, and hands
// composition requests to internal/composer. Output meant for other programs
// (plans, interval listings, command lines) goes to stdout; logs go to
// stderr.
package main
