// Package scheduler runs recurring jobs on an injectable clock.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	pblog "github.com/poundbot/gamewatch/log"
	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

var log = pblog.Log.WithField("sys", "SCHED")

// A Job is one run of a scheduled task. ctx is cancelled on Stop.
type Job func(ctx context.Context)

type job struct {
	name     string
	interval time.Duration
	delay    time.Duration
	fn       Job
}

// A Scheduler runs every scheduled Job first after its initial delay and
// then once per interval. Runs of one job never overlap; a run that
// overruns its interval delays the next one.
type Scheduler struct {
	clock clock.Clock

	mu      sync.Mutex
	jobs    []job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New returns a Scheduler driven by clk.
func New(clk clock.Clock) *Scheduler {
	return &Scheduler{clock: clk}
}

// Schedule adds a job. Jobs added after Start begin immediately.
func (s *Scheduler) Schedule(name string, interval, initialDelay time.Duration, fn Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive: %w", name, types.ErrConfiguration)
	}
	if initialDelay < 0 {
		initialDelay = 0
	}

	j := job{name: name, interval: interval, delay: initialDelay, fn: fn}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, j)
	if s.started {
		s.launch(j)
	}
	return nil
}

// Start launches every scheduled job.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.started = true
	for _, j := range s.jobs {
		s.launch(j)
	}
	log.WithField("jobs", len(s.jobs)).Info("Starting")
	return nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	log.Warn("Shutting down")
}

// launch arms the first timer before the goroutine starts so that clock
// advances made right after Start are observed.
func (s *Scheduler) launch(j job) {
	timer := s.clock.Timer(j.delay)
	s.wg.Add(1)
	go s.run(s.ctx, j, timer)
}

func (s *Scheduler) run(ctx context.Context, j job, timer *clock.Timer) {
	defer s.wg.Done()
	jlog := log.WithFields(logrus.Fields{"ssys": j.name})

	select {
	case <-ctx.Done():
		timer.Stop()
		return
	case <-timer.C:
	}

	ticker := s.clock.Ticker(j.interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx, jlog, j)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, jlog *logrus.Entry, j job) {
	defer func() {
		if r := recover(); r != nil {
			jlog.WithField("panic", r).Error("job panicked")
		}
	}()

	start := s.clock.Now()
	jlog.Trace("run")
	j.fn(ctx)
	jlog.WithField("took", s.clock.Since(start)).Trace("done")
}
