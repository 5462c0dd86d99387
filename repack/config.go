package repack

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// Defaults mirror the tool's historical CLI defaults.
const (
	DefaultLevel       = 9
	DefaultMaxFileSize = 500_000_000
	DefaultExtensions  = ".7z,.zip,.lnx,.col,.int"
)

// Config carries one run's settings. Build it with NewConfig and treat it
// as read-only afterwards: the walker, classifier, and engine all consult
// the same value and nothing mutates it mid-run.
type Config struct {
	SourceDir   string
	DestDir     string
	Level       int   // compression level for rebuilt containers, 0-9
	Workers     int   // worker pool ceiling, always >= 1
	MaxFileSize int64 // files above this many bytes are copied verbatim
	// Extensions is the lowercase allow-list of extensions eligible for
	// repacking, each with its leading dot.
	Extensions map[string]bool
	DryRun     bool
}

// NewConfig validates and assembles a run configuration. workers <= 0
// selects the default pool size; extensions is the raw comma-delimited
// allow-list from the CLI.
func NewConfig(sourceDir, destDir string, level, workers int, maxFileSize int64, extensions string, dryRun bool) (Config, error) {
	if sourceDir == "" {
		return Config{}, errors.New("source directory is required")
	}
	if destDir == "" {
		return Config{}, errors.New("destination directory is required")
	}
	if level < 0 || level > 9 {
		return Config{}, fmt.Errorf("compression level must be between 0 and 9, got %d", level)
	}
	if maxFileSize < 0 {
		return Config{}, fmt.Errorf("max file size must not be negative, got %d", maxFileSize)
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return Config{
		SourceDir:   sourceDir,
		DestDir:     destDir,
		Level:       level,
		Workers:     workers,
		MaxFileSize: maxFileSize,
		Extensions:  ParseExtensions(extensions),
		DryRun:      dryRun,
	}, nil
}

// DefaultWorkers returns the default pool ceiling: one fewer than the CPU
// count, never below one.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// ParseExtensions normalizes a comma-delimited allow-list: items are
// trimmed, lowercased, and given a leading dot when missing. Empty items
// are dropped.
func ParseExtensions(list string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || item == "." {
			continue
		}
		if !strings.HasPrefix(item, ".") {
			item = "." + item
		}
		set[item] = true
	}
	return set
}

// ExtensionList renders the allow-list for logs, sorted and comma-joined.
func (c Config) ExtensionList() string {
	items := make([]string, 0, len(c.Extensions))
	for ext := range c.Extensions {
		items = append(items, ext)
	}
	slices.Sort(items)
	return strings.Join(items, ",")
}
