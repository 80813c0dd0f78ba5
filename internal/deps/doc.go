// Package deps checks the external binaries sharecut shells out to.
package deps
