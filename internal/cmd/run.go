package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noisysoil/repacker/repack"
	"github.com/noisysoil/repacker/util"
)

// NewRunCmd creates and returns the run subcommand for the repacker CLI.
// It mirrors a source tree into a destination tree, rebuilding archives
// along the way.
func NewRunCmd() *cobra.Command {
	var (
		sourceDir   string
		destDir     string
		level       int
		workers     int
		maxFileSize int64
		extensions  string
		logLevel    string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Mirror a source tree into a destination tree",
		Long: `Mirror a source directory tree into a destination tree.

Archives with a supported extension are rebuilt into the normalized container
format at the chosen compression level, bare files with designated extensions
are wrapped into fresh containers, and everything else is copied byte for
byte. Unreadable containers and files above the size ceiling fall back to a
verbatim copy, so a single bad file never stops the run.`,
		Run: func(cmd *cobra.Command, args []string) {
			log := newLogger(logLevel, dryRun)
			cfg, err := repack.NewConfig(sourceDir, destDir, level, workers, maxFileSize, extensions, dryRun)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid configuration")
			}
			if workers <= 0 {
				log.Info().Int("processes", cfg.Workers).Msg("process count not set, using one fewer than the CPU count")
			}
			runRun(cmd.Context(), log, cfg)
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source_directory", "s", "", "Path to the directory tree to mirror (required)")
	cmd.Flags().StringVarP(&destDir, "destination_directory", "d", "", "Path to the destination tree (required)")
	cmd.Flags().IntVarP(&level, "compression_level", "c", repack.DefaultLevel, "Compression level for rebuilt containers (0-9)")
	cmd.Flags().IntVarP(&workers, "processes", "p", 0, "Number of concurrent jobs (0 selects one fewer than the CPU count)")
	cmd.Flags().Int64VarP(&maxFileSize, "max_file_size", "m", repack.DefaultMaxFileSize, "Files larger than this many bytes are copied verbatim")
	cmd.Flags().StringVarP(&extensions, "file_extensions_to_compress", "f", repack.DefaultExtensions, "Comma-delimited extensions eligible for repacking")
	cmd.Flags().StringVarP(&logLevel, "log_level", "l", "warn", "Log level: trace, debug, info, warn, error")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would be done without writing anything")

	cmd.MarkFlagRequired("source_directory")
	cmd.MarkFlagRequired("destination_directory")

	return cmd
}

func runRun(ctx context.Context, log zerolog.Logger, cfg repack.Config) {
	fi, err := os.Stat(cfg.SourceDir)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SourceDir).Msg("source directory is not accessible")
	}
	if !fi.IsDir() {
		log.Fatal().Str("path", cfg.SourceDir).Msg("source path is not a directory")
	}
	if pathsOverlap(cfg.SourceDir, cfg.DestDir) {
		log.Fatal().Str("source", cfg.SourceDir).Str("destination", cfg.DestDir).
			Msg("source and destination trees must not overlap")
	}

	log.Info().Str("extensions", cfg.ExtensionList()).Msg("extensions eligible for repacking")
	log.Warn().Msg("empty directories are not transferred")

	if cfg.DryRun {
		log.Info().Msg("dry run: nothing will be written")
	} else {
		if _, err := os.Stat(cfg.DestDir); os.IsNotExist(err) {
			if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
				log.Fatal().Err(err).Str("path", cfg.DestDir).Msg("failed to create destination directory")
			}
			log.Info().Str("path", cfg.DestDir).Msg("created destination directory")
		}
		if free, err := util.DiskFree(cfg.DestDir); err == nil {
			log.Info().Str("free", util.HumanBytes(free)).Msg("destination free space")
		} else {
			log.Debug().Err(err).Msg("destination free space unavailable")
		}
	}

	sum, runErr := repack.NewRunner(cfg, log).Run(ctx)
	if runErr != nil {
		log.Error().Err(runErr).Msg("run aborted before the whole tree was processed")
	}

	fmt.Printf("Done! Total time taken %s for %d files\n", sum.Elapsed.Round(time.Millisecond), sum.Files)
	fmt.Printf("  Transcoded: %d\n", sum.Transcoded)
	fmt.Printf("  Wrapped: %d\n", sum.Wrapped)
	fmt.Printf("  Copied: %d (%d downgraded)\n", sum.Copied, sum.Downgraded)
	fmt.Printf("  Failed: %d\n", sum.Failed)
	fmt.Printf("  Read %s, wrote %s\n",
		util.HumanBytes(uint64(sum.SourceBytes)), util.HumanBytes(uint64(sum.DestBytes)))

	if runErr != nil || !sum.Ok() {
		os.Exit(1)
	}
}

// pathsOverlap reports whether either cleaned path contains the other.
// Mirroring a tree into itself would feed the walker its own output.
func pathsOverlap(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if a == b {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(a, b+sep) || strings.HasPrefix(b, a+sep)
}
