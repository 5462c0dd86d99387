package repack

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noisysoil/repacker/archive"
	"github.com/noisysoil/repacker/util"
)

// ErrNoContent marks a container whose entries carry no bytes at all; such
// containers are copied verbatim instead of rebuilt into an empty shell.
var ErrNoContent = errors.New("container has no content to repack")

// Engine turns one Job at a time into a destination file.
type Engine struct {
	cfg Config
	log zerolog.Logger
}

// NewEngine builds an Engine bound to one run's configuration.
func NewEngine(cfg Config, log zerolog.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Process mirrors one file into the destination tree. Container problems
// never surface as errors — those jobs downgrade to a verbatim copy — so
// Outcome.Err is set only when the filesystem itself fails.
func (e *Engine) Process(job Job) Outcome {
	planned := Classify(job.Base, job.Size, e.cfg)
	out := Outcome{Job: job, Planned: planned, Applied: planned}

	destDir := filepath.Join(e.cfg.DestDir, job.RelDir)
	if e.cfg.DryRun {
		out.DestPath = destPath(destDir, job.Base, planned)
		return out
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		out.Err = fmt.Errorf("create destination directory: %w", err)
		return out
	}

	if planned != TreatCopy {
		dest := destPath(destDir, job.Base, planned)
		var err error
		if planned == TreatTranscode {
			err = e.transcode(job.Source, dest)
		} else {
			err = e.wrap(job, dest)
		}
		if err == nil {
			out.DestPath = dest
			if fi, statErr := os.Stat(dest); statErr == nil {
				out.DestBytes = fi.Size()
			}
			return out
		}
		if errors.Is(err, ErrNoContent) {
			e.log.Debug().Str("path", job.Source).Msg("no content to repack, copying container as-is")
		} else {
			e.log.Warn().Err(err).Str("path", job.Source).Msg("container rebuild failed, copying original")
		}
		out.Applied = TreatCopy
	}

	out.DestPath = destPath(destDir, job.Base, TreatCopy)
	n, err := util.CopyFile(job.Source, out.DestPath)
	if err != nil {
		out.Err = fmt.Errorf("copy %s: %w", job.Source, err)
		return out
	}
	out.DestBytes = n
	return out
}

// transcode rebuilds the container at src as a normalized one at dest,
// entry for entry. It returns ErrNoContent without touching dest when the
// source has nothing worth carrying.
func (e *Engine) transcode(src, dest string) error {
	r, err := archive.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	if r.Len() == 0 || r.ContentSize() == 0 {
		return ErrNoContent
	}

	w, err := archive.Create(dest, e.cfg.Level)
	if err != nil {
		return err
	}
	for entry := range r.Iterate {
		e.log.Debug().Str("container", src).Str("entry", entry.Name).Msg("carrying entry")
		if err := w.Append(entry); err != nil {
			w.Discard()
			return err
		}
	}
	return w.Close()
}

// wrap stores the file as the single entry of a fresh container at dest.
func (e *Engine) wrap(job Job, dest string) error {
	w, err := archive.Create(dest, e.cfg.Level)
	if err != nil {
		return err
	}
	entry := archive.Entry{Name: job.Base, Size: uint64(job.Size)}
	if job.Size > 0 {
		entry.Open = func() (io.ReadCloser, error) {
			return os.Open(job.Source)
		}
	}
	if err := w.Append(entry); err != nil {
		w.Discard()
		return err
	}
	return w.Close()
}

// destPath names the one file a job produces: the source name for a copy,
// the stem plus the normalized extension for a rebuilt container.
func destPath(destDir, base string, t Treatment) string {
	if t == TreatCopy {
		return filepath.Join(destDir, base)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(destDir, stem+archive.Extension)
}
