// Package main provides the repacker command-line interface.
//
// repacker mirrors a source directory tree into a destination tree. Supported
// archive containers are rebuilt into one normalized format at a chosen
// compression level, bare files with designated extensions are wrapped into
// fresh containers, and everything else is copied byte for byte. Work is
// spread across a bounded pool of concurrent jobs and a single unreadable
// file never stops the rest of the run.
//
// The main binary supports multiple subcommands:
//   - run: Mirror a source tree into a destination tree
//   - inspect: Summarize the contents of individual archives
//   - seed: Generate a sample source tree with a randomized layout
package main
