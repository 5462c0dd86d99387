package repack

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Walk streams one Job per regular file under cfg.SourceDir to emit, in
// directory order. Symlinks to files are followed so their content is
// mirrored; symlinks to directories are never descended. An unreadable
// subtree is logged and skipped, but an unreadable root or a non-nil
// return from emit stops the walk.
func Walk(cfg Config, log zerolog.Logger, emit func(Job) error) error {
	root := cfg.SourceDir
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("walk source root: %w", err)
			}
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if d.IsDir() {
			log.Debug().Str("path", path).Msg("entering directory")
			return nil
		}
		// Stat rather than d.Info so symlinked files report their
		// target's size and broken links surface here.
		info, statErr := os.Stat(path)
		if statErr != nil {
			log.Warn().Err(statErr).Str("path", path).Msg("skipping unreadable file")
			return nil
		}
		if info.IsDir() {
			log.Debug().Str("path", path).Msg("skipping symlink to directory")
			return nil
		}
		if !info.Mode().IsRegular() {
			log.Warn().Str("path", path).Stringer("mode", info.Mode()).Msg("skipping special file")
			return nil
		}
		rel, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			return fmt.Errorf("relative path of %s: %w", path, relErr)
		}
		if rel == "." {
			rel = ""
		}
		return emit(Job{
			ID:     uuid.New(),
			Source: path,
			RelDir: rel,
			Base:   d.Name(),
			Size:   info.Size(),
		})
	})
}
