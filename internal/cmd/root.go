package cmd

import (
	"github.com/spf13/cobra"

	"github.com/noisysoil/repacker/version"
)

// NewRootCmd creates and returns the root cobra command for the repacker CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repacker",
		Short: "repacker - Mirror directory trees while normalizing archives",
		Long: `repacker mirrors a source directory tree into a destination tree.

Supported archive containers are rebuilt into a single normalized format at a
chosen compression level, bare files with designated extensions are wrapped
into fresh containers, and everything else is copied byte for byte. Jobs run
concurrently under a bounded worker pool and one broken file never stops the
rest of the run.

Use subcommands to perform different operations:
  - run: Mirror a source tree into a destination tree
  - inspect: Summarize the contents of individual archives
  - seed: Generate a sample source tree with a randomized layout`,
		Version: version.GetFullVersion(),
	}

	groupPipeline := "pipeline"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupPipeline,
		Title: "Repack Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	runCmd := NewRunCmd()
	inspectCmd := NewInspectCmd()
	seedCmd := NewSeedCmd()

	runCmd.GroupID = groupPipeline
	inspectCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
