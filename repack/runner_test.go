package repack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// readTree maps every file under root to its content, keyed by relative
// path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read tree %s: %v", root, err)
	}
	return files
}

func TestRunnerProcessesTree(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	writeZip(t, filepath.Join(src, "a", "data.zip"),
		[]string{"x.txt"}, map[string]string{"x.txt": "hi"})
	mustWriteFile(t, filepath.Join(src, "a", "notes.txt"), "plain")
	mustWriteFile(t, filepath.Join(src, "b", "rom.lnx"), "cartridge")

	cfg, err := NewConfig(src, dest, 9, 2, DefaultMaxFileSize, DefaultExtensions, false)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	sum, err := NewRunner(cfg, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !sum.Ok() {
		t.Fatalf("summary reports %d failures", sum.Failed)
	}
	if sum.Files != 3 {
		t.Errorf("Files = %d, expected 3", sum.Files)
	}
	if sum.Transcoded != 1 || sum.Copied != 1 || sum.Wrapped != 1 {
		t.Errorf("treatment counts = %d/%d/%d, expected 1 transcoded, 1 copied, 1 wrapped",
			sum.Transcoded, sum.Copied, sum.Wrapped)
	}
	if sum.SourceBytes <= 0 || sum.DestBytes <= 0 {
		t.Errorf("byte totals = %d/%d, expected positive", sum.SourceBytes, sum.DestBytes)
	}

	for _, rel := range []string{
		filepath.Join("a", "data.zip"),
		filepath.Join("a", "notes.txt"),
		filepath.Join("b", "rom.zip"),
	} {
		if _, err := os.Stat(filepath.Join(dest, rel)); err != nil {
			t.Errorf("expected destination file %s: %v", rel, err)
		}
	}
}

func TestRunnerHonorsWorkerCeiling(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	for i := 0; i < 8; i++ {
		mustWriteFile(t, filepath.Join(src, fmt.Sprintf("f%d.txt", i)), "x")
	}

	cfg, err := NewConfig(src, dest, 9, 2, DefaultMaxFileSize, DefaultExtensions, false)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	r := NewRunner(cfg, zerolog.Nop())

	var current, peak atomic.Int32
	r.process = func(job Job) Outcome {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		current.Add(-1)
		return Outcome{Job: job, Planned: TreatCopy, Applied: TreatCopy}
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.Files != 8 {
		t.Errorf("Files = %d, expected 8", sum.Files)
	}
	if got := peak.Load(); got != 2 {
		t.Errorf("peak concurrency = %d, expected 2", got)
	}
}

func TestRunnerIsolatesFailures(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	for _, name := range []string{"bad1.txt", "bad2.txt", "good1.txt", "good2.txt"} {
		mustWriteFile(t, filepath.Join(src, name), "content")
	}

	cfg, err := NewConfig(src, dest, 9, 2, DefaultMaxFileSize, DefaultExtensions, false)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	r := NewRunner(cfg, zerolog.Nop())
	r.process = func(job Job) Outcome {
		out := Outcome{Job: job, Planned: TreatCopy, Applied: TreatCopy}
		if strings.HasPrefix(job.Base, "bad") {
			out.Err = errors.New("simulated failure")
		}
		return out
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.Files != 4 {
		t.Errorf("Files = %d, expected 4: failures must not stop other jobs", sum.Files)
	}
	if sum.Failed != 2 {
		t.Errorf("Failed = %d, expected 2", sum.Failed)
	}
	if sum.Copied != 2 {
		t.Errorf("Copied = %d, expected 2", sum.Copied)
	}
	if sum.Ok() {
		t.Error("Ok() = true with failed jobs, expected false")
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	mustWriteFile(t, filepath.Join(src, "a.txt"), "content")

	cfg, err := NewConfig(src, dest, 9, 1, DefaultMaxFileSize, DefaultExtensions, false)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := NewRunner(cfg, zerolog.Nop()).Run(ctx)
	if err == nil {
		t.Fatal("Run succeeded with a canceled context, expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, expected to wrap context.Canceled", err)
	}
	if sum.Files != 0 {
		t.Errorf("Files = %d, expected 0 after immediate cancel", sum.Files)
	}
}

func TestRunnerIsIdempotent(t *testing.T) {
	src := t.TempDir()
	writeZip(t, filepath.Join(src, "deep", "data.zip"),
		[]string{"a.txt", "d/", "b.bin"},
		map[string]string{"a.txt": "stable", "b.bin": "bytes"})
	mustWriteFile(t, filepath.Join(src, "plain.txt"), "copied as-is")
	mustWriteFile(t, filepath.Join(src, "rom.int"), "wrapped")

	run := func(dest string) {
		cfg, err := NewConfig(src, dest, 9, 2, DefaultMaxFileSize, DefaultExtensions, false)
		if err != nil {
			t.Fatalf("NewConfig failed: %v", err)
		}
		sum, err := NewRunner(cfg, zerolog.Nop()).Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !sum.Ok() {
			t.Fatalf("summary reports %d failures", sum.Failed)
		}
	}

	first, second := t.TempDir(), t.TempDir()
	run(first)
	run(second)

	got, want := readTree(t, first), readTree(t, second)
	if len(got) != len(want) {
		t.Fatalf("run outputs differ in file count: %d vs %d", len(got), len(want))
	}
	for rel, content := range want {
		if got[rel] != content {
			t.Errorf("output %s differs between identical runs", rel)
		}
	}
}
