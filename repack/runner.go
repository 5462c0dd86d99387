package repack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/noisysoil/repacker/util"
)

// Runner drives one whole run: it walks the source tree, fans jobs out to
// at most Config.Workers concurrent goroutines, and folds every Outcome
// into a Summary.
type Runner struct {
	cfg     Config
	log     zerolog.Logger
	process func(Job) Outcome
}

// NewRunner builds a Runner whose jobs execute through an Engine.
func NewRunner(cfg Config, log zerolog.Logger) *Runner {
	engine := NewEngine(cfg, log)
	return &Runner{cfg: cfg, log: log, process: engine.Process}
}

// Run processes the source tree and blocks until every in-flight job has
// finished. Pool slots come from a weighted semaphore: the walk blocks
// acquiring a slot when Config.Workers jobs are in flight, which is the
// run's only backpressure. Each job goroutine releases its slot in a defer
// so the slot comes back on every exit path.
//
// ctx gates submission only. Canceling stops new jobs; jobs already
// running finish and are counted in the Summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sem := semaphore.NewWeighted(int64(r.cfg.Workers))
	outcomes := make(chan Outcome)
	collected := make(chan Summary)

	go func() {
		var sum Summary
		for o := range outcomes {
			r.logOutcome(o)
			sum.Add(o)
		}
		collected <- sum
	}()

	var wg sync.WaitGroup
	walkErr := Walk(r.cfg, r.log, func(job Job) error {
		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("acquire worker slot: %w", err)
		}
		r.log.Debug().Stringer("job", job.ID).Str("path", job.Source).Msg("submitting job")
		wg.Add(1)
		go func() {
			defer sem.Release(1)
			defer wg.Done()
			outcomes <- r.process(job)
		}()
		return nil
	})

	wg.Wait()
	close(outcomes)
	sum := <-collected
	sum.Elapsed = time.Since(start)
	return sum, walkErr
}

func (r *Runner) logOutcome(o Outcome) {
	switch {
	case o.Err != nil:
		r.log.Error().Err(o.Err).Stringer("job", o.Job.ID).Str("source", o.Job.Source).Msg("job failed")
	case r.cfg.DryRun:
		r.log.Info().Stringer("job", o.Job.ID).Str("source", o.Job.Source).
			Str("dest", o.DestPath).Stringer("treatment", o.Planned).Msg("would process")
	default:
		evt := r.log.Info().Stringer("job", o.Job.ID).Str("source", o.Job.Source).
			Str("dest", o.DestPath).Stringer("treatment", o.Applied).
			Str("source_size", util.HumanBytes(uint64(o.Job.Size))).
			Str("dest_size", util.HumanBytes(uint64(o.DestBytes)))
		if o.Downgraded() {
			evt = evt.Bool("downgraded", true)
		}
		evt.Msg("job complete")
	}
}
