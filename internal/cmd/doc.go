// Package cmd provides the command-line interface implementation for repacker.
//
// This package contains all the subcommand implementations for the repacker
// CLI tool. It uses the Cobra library for command structure and Fang for
// beautiful styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - run: Mirror a source tree while rebuilding supported archives
//   - inspect: Summarize the contents of individual archives
//   - seed: Generate sample source trees for trying out the pipeline
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Commands log through zerolog and
// delegate the actual work to the repack and archive packages.
package cmd
