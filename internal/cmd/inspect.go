package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/noisysoil/repacker/archive"
	"github.com/noisysoil/repacker/repack"
	"github.com/noisysoil/repacker/util"
)

// NewInspectCmd creates and returns the inspect subcommand for the repacker
// CLI. It reports what a rebuild would carry for each named archive.
func NewInspectCmd() *cobra.Command {
	var (
		verbose bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE...",
		Short: "Summarize the contents of archives",
		Long: `Summarize every entry a rebuild would carry for each named archive.

Archives are opened with the same readers the run command uses, so the report
reflects exactly what a rebuild would see: file entries with their sizes,
directory entries, and the total content size.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runInspect(args, verbose, workers)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every entry of every archive")
	cmd.Flags().IntVarP(&workers, "processes", "p", 0, "Number of archives to read concurrently (0 selects one fewer than the CPU count)")

	return cmd
}

type inspectReport struct {
	path  string
	files int
	dirs  int
	bytes uint64
	names []string // per-entry lines, populated when verbose
	err   error
}

func runInspect(paths []string, verbose bool, workers int) {
	if workers <= 0 {
		workers = repack.DefaultWorkers()
	}

	// Reports land in their argument's slot so output order matches the
	// command line no matter which read finishes first.
	reports := make([]inspectReport, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = inspectOne(path, verbose)
			return nil
		})
	}
	_ = g.Wait()

	var failures int
	for _, rep := range reports {
		if rep.err != nil {
			failures++
			fmt.Printf("%s: %v\n", rep.path, rep.err)
			continue
		}
		fmt.Printf("%s: %d files, %d directories, %s of content\n",
			rep.path, rep.files, rep.dirs, util.HumanBytes(rep.bytes))
		for _, line := range rep.names {
			fmt.Printf("  %s\n", line)
		}
	}

	if failures > 0 {
		fmt.Printf("\n%d of %d archives could not be read\n", failures, len(paths))
		os.Exit(1)
	}
}

func inspectOne(path string, verbose bool) inspectReport {
	rep := inspectReport{path: path}
	r, err := archive.OpenReader(path)
	if err != nil {
		rep.err = err
		return rep
	}
	defer r.Close()

	for e := range r.Iterate {
		if e.IsDir {
			rep.dirs++
			if verbose {
				rep.names = append(rep.names, e.Name+"/")
			}
			continue
		}
		rep.files++
		rep.bytes += e.Size
		if verbose {
			rep.names = append(rep.names, fmt.Sprintf("%s (%s)", e.Name, util.HumanBytes(e.Size)))
		}
	}
	return rep
}
