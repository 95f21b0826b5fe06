// Package poller turns the backend's submit-now-finish-later generation
// jobs into a single completion signal. One Poller owns exactly one job:
// it submits, then queries status on a fixed interval until the job reaches
// a terminal state, surfacing progress along the way.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teachforge-io/agent/internal/models"
)

const (
	// DefaultInterval is the steady-state delay between status queries.
	DefaultInterval = 2 * time.Second

	// DefaultRetryInterval is the longer delay used after a transient
	// network error during a poll tick, to ride out connectivity loss
	// without surfacing a spurious failure.
	DefaultRetryInterval = 5 * time.Second

	// DefaultMaxAttempts bounds the number of status queries so a job that
	// never reaches a terminal state cannot be polled forever. Zero
	// disables the bound.
	DefaultMaxAttempts = 300
)

// SubmitFunc starts the job and returns its task identifier.
type SubmitFunc func(ctx context.Context) (string, error)

// StatusFunc queries the job's current status record.
type StatusFunc func(ctx context.Context, taskID string) (models.TaskStatus, error)

// Options tune one poll loop.
type Options struct {
	Interval      time.Duration
	RetryInterval time.Duration
	MaxAttempts   int

	// ResultFields is the endpoint's ordered list of result field
	// candidates; the first non-empty match becomes the job artifact.
	ResultFields []string
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	if o.MaxAttempts < 0 {
		o.MaxAttempts = 0
	}
	return o
}

// Poller drives one job from submission to a terminal state. Construct with
// New, call Start once, then consume Updates or block in Wait. Stop halts
// local polling only; the backend offers no server-side cancellation, so the
// remote job keeps running regardless.
//
// A Poller is single-use. After Stop or a terminal state it is disposed and
// must not be restarted; distinct jobs each get their own Poller and poll
// independently.
type Poller struct {
	submit  SubmitFunc
	status  StatusFunc
	opts    Options
	updates chan models.JobUpdate
	done    chan struct{}
	stop    chan struct{}

	stopOnce sync.Once

	mu       sync.Mutex
	started  bool
	taskID   string
	state    models.JobState
	progress int
	final    models.JobUpdate
}

// New creates an idle poller for one job.
func New(submit SubmitFunc, status StatusFunc, opts Options) *Poller {
	return &Poller{
		submit:  submit,
		status:  status,
		opts:    opts.withDefaults(),
		updates: make(chan models.JobUpdate, 16),
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
		state:   models.JobIdle,
	}
}

// Start submits the job. On success the poller transitions to Submitted,
// returns the task identifier immediately, and begins polling in the
// background; completion arrives via Updates/Wait, never by blocking the
// caller here. On a submission failure the poller resolves Failed at once
// and no status query is ever issued.
//
// Calling Start a second time is a no-op returning the original task id.
func (p *Poller) Start(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.started {
		taskID := p.taskID
		p.mu.Unlock()
		return taskID, nil
	}
	p.started = true
	p.mu.Unlock()

	taskID, err := p.submit(ctx)
	if err != nil {
		p.finish(models.JobUpdate{
			State: models.JobFailed,
			Err:   fmt.Errorf("job submission failed: %w", err),
		})
		return "", err
	}

	p.mu.Lock()
	p.taskID = taskID
	p.state = models.JobSubmitted
	p.mu.Unlock()

	p.emit(models.JobUpdate{TaskID: taskID, State: models.JobSubmitted})

	go p.loop(ctx, taskID)

	return taskID, nil
}

// Updates delivers progress and the terminal update. The channel is closed
// once the poller finishes or is stopped. Progress updates may be dropped if
// the consumer lags; the terminal update never is.
func (p *Poller) Updates() <-chan models.JobUpdate {
	return p.updates
}

// Wait blocks until the job reaches a terminal state, Stop is called, or ctx
// is done, and returns the last known update.
func (p *Poller) Wait(ctx context.Context) (models.JobUpdate, error) {
	select {
	case <-ctx.Done():
		return p.snapshot(), ctx.Err()
	case <-p.done:
		return p.snapshot(), nil
	}
}

// Stop halts further polling and discards the next scheduled tick. It is
// idempotent and purely local: server-side work continues. The poller is
// disposed afterwards.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// State returns the current lifecycle state.
func (p *Poller) State() models.JobState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TaskID returns the backend job identifier, or "" before submission.
func (p *Poller) TaskID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.taskID
}

func (p *Poller) snapshot() models.JobUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Terminal() {
		return p.final
	}
	return models.JobUpdate{TaskID: p.taskID, State: p.state, Progress: p.progress}
}

// loop is the poll loop. Status queries are strictly sequential: the next
// tick is scheduled only after the previous response has been processed, so
// no two queries for the same job are ever in flight at once.
func (p *Poller) loop(ctx context.Context, taskID string) {
	attempts := 0
	delay := p.opts.Interval

	for {
		select {
		case <-ctx.Done():
			p.halt(taskID)
			return
		case <-p.stop:
			p.halt(taskID)
			return
		case <-time.After(delay):
		}

		status, err := p.status(ctx, taskID)
		attempts++

		if err != nil {
			if models.IsNetworkError(err) {
				// Transient connectivity loss. Keep the job alive and try
				// again after a longer delay.
				logrus.WithField("task_id", taskID).WithError(err).
					Debugln("Transient error polling job status, will retry")
				delay = p.opts.RetryInterval
				continue
			}
			// The backend answered with an error. That includes 401, which
			// has already evicted the session by the time we see it.
			p.finish(models.JobUpdate{
				TaskID: taskID,
				State:  models.JobFailed,
				Err:    err,
			})
			return
		}

		delay = p.opts.Interval
		progress := p.observeProgress(status)

		switch status.State() {
		case models.JobSucceeded:
			result, ok := status.Result(p.opts.ResultFields)
			if !ok {
				// Completed but none of the known result fields is set.
				// Hand back the raw record rather than losing the response.
				result = status
			}
			p.finish(models.JobUpdate{
				TaskID:   taskID,
				State:    models.JobSucceeded,
				Progress: 100,
				Result:   result,
			})
			return

		case models.JobFailed:
			message := status.ErrorMessage()
			if len(message) == 0 {
				message = "generation failed"
			}
			p.finish(models.JobUpdate{
				TaskID:   taskID,
				State:    models.JobFailed,
				Progress: progress,
				Err:      fmt.Errorf("%s", message),
			})
			return

		default:
			p.setState(models.JobRunning)
			p.emit(models.JobUpdate{
				TaskID:   taskID,
				State:    models.JobRunning,
				Progress: progress,
			})
		}

		if p.opts.MaxAttempts > 0 && attempts >= p.opts.MaxAttempts {
			p.finish(models.JobUpdate{
				TaskID:   taskID,
				State:    models.JobFailed,
				Progress: progress,
				Err:      fmt.Errorf("job did not finish after %d status checks", attempts),
			})
			return
		}
	}
}

// observeProgress folds a reported progress value into the high-water mark.
// Regressions are tolerated but not trusted: progress never moves backwards.
func (p *Poller) observeProgress(status models.TaskStatus) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if reported := status.Progress(); reported > p.progress {
		p.progress = reported
	}
	return p.progress
}

func (p *Poller) setState(state models.JobState) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

// halt records a local stop: the state stays non-terminal, channels close.
func (p *Poller) halt(taskID string) {
	p.mu.Lock()
	p.final = models.JobUpdate{TaskID: taskID, State: p.state, Progress: p.progress}
	p.mu.Unlock()
	close(p.updates)
	close(p.done)
}

// finish records the terminal update and closes the channels. The terminal
// update is always delivered to the updates channel.
func (p *Poller) finish(update models.JobUpdate) {
	p.mu.Lock()
	p.state = update.State
	p.final = update
	if update.Progress > p.progress {
		p.progress = update.Progress
	}
	p.mu.Unlock()

	// The loop is the only sender, so making room for one element is enough
	// to guarantee delivery even when no consumer is draining the channel.
	select {
	case p.updates <- update:
	default:
		select {
		case <-p.updates:
		default:
		}
		select {
		case p.updates <- update:
		default:
		}
	}
	close(p.updates)
	close(p.done)
}

// emit delivers a progress update without ever blocking the poll loop. A
// slow consumer just misses intermediate updates.
func (p *Poller) emit(update models.JobUpdate) {
	select {
	case p.updates <- update:
	default:
	}
}
