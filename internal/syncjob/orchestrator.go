package syncjob

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"readmark/internal/shared"
)

// State is the orchestrator's externally visible snapshot.
type State struct {
	Status      Status
	Message     string
	Progress    *float64
	ErrorDetail string
	IsSyncing   bool
	NeedsReload bool
	FileSizeMB  *float64
}

// Options configure an Orchestrator. Zero values fall back to the listed
// defaults.
type Options struct {
	InitiateTimeout time.Duration // default 10s
	PollTimeout     time.Duration // per-tick bound, default 30s
	PollInterval    time.Duration // default 1s
	MaxAttempts     int           // poll ticks before giving up, default 120
	ReloadGrace     time.Duration // delay before the reload signal, default 500ms
}

// Orchestrator runs the initiate-then-poll state machine for one consumer
// (one mounted page). It is not restartable after Close.
type Orchestrator struct {
	api    API
	opts   Options
	logger *log.Logger

	mu          sync.Mutex
	state       State
	running     bool
	closed      bool
	cancel      context.CancelFunc
	done        chan struct{}
	reloadTimer *time.Timer

	reload chan struct{}
}

// New builds an Orchestrator in the Idle state.
func New(api API, opts Options, logger *log.Logger) *Orchestrator {
	if opts.InitiateTimeout <= 0 {
		opts.InitiateTimeout = 10 * time.Second
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 30 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 120
	}
	if opts.ReloadGrace <= 0 {
		opts.ReloadGrace = 500 * time.Millisecond
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Orchestrator{
		api:    api,
		opts:   opts,
		logger: logger,
		state:  State{Status: StatusIdle},
		reload: make(chan struct{}, 1),
	}
}

// Start kicks off initiation and polling. A second call while a run is in
// flight is a no-op: the guard flag is set synchronously, before any
// asynchronous work, so near-simultaneous calls cannot both initiate.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	if o.running || o.closed {
		o.mu.Unlock()
		return
	}
	o.running = true
	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel
	done := make(chan struct{})
	o.done = done
	o.state = State{Status: StatusChecking, Message: "Checking for updates...", IsSyncing: true}
	o.mu.Unlock()

	go o.run(ctx, done)
}

// State returns a snapshot of the current sync state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsSyncing reports whether a sync is in progress.
func (o *Orchestrator) IsSyncing() bool {
	return o.State().IsSyncing
}

// Err returns the current error detail, if any.
func (o *Orchestrator) Err() string {
	return o.State().ErrorDetail
}

// Reload yields at most one signal per completed sync, delivered a grace
// delay after the Completed transition so final backend state settles before
// the consumer refetches.
func (o *Orchestrator) Reload() <-chan struct{} {
	return o.reload
}

// Close tears the orchestrator down: cancels any in-flight request, stops the
// poll loop and the pending reload timer, and clears the run guard. Close is
// idempotent and produces no state transition.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.running = false
	cancel := o.cancel
	timer := o.reloadTimer
	done := o.done
	o.cancel = nil
	o.reloadTimer = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if timer != nil {
		timer.Stop()
	}
	if done != nil {
		<-done
	}
}

func (o *Orchestrator) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	resp, err := o.api.CheckAndSync(ctx, o.opts.InitiateTimeout)
	if err != nil {
		switch {
		case shared.IsCancelled(err):
			// Teardown mid-initiation: the state is being discarded.
		case shared.IsAuthRejected(err):
			o.finish(State{Status: StatusIdle})
		default:
			o.logger.Warn("sync initiation failed", "err", err)
			o.finish(State{Status: StatusError, Message: "Sync failed to start", ErrorDetail: err.Error()})
		}
		return
	}

	switch {
	case resp.Initiated:
		start := resp.Status
		if !start.active() {
			start = StatusChecking
		}
		o.transition(State{Status: start, Message: resp.Message, IsSyncing: true})
		o.poll(ctx)
	case resp.Status == StatusUpToDate:
		o.finish(State{Status: StatusUpToDate, Message: resp.Message})
	case resp.Status == StatusError:
		o.finish(State{Status: StatusError, Message: resp.Message, ErrorDetail: detail(resp.Error, resp.Message)})
	case resp.Status.active():
		// Another process is already syncing; join it by polling.
		o.transition(State{Status: resp.Status, Message: resp.Message, IsSyncing: true})
		o.poll(ctx)
	default:
		o.finish(State{Status: StatusIdle})
	}
}

// poll issues one status call immediately, then one per interval, strictly
// sequentially, until a terminal status or the attempt bound.
func (o *Orchestrator) poll(ctx context.Context) {
	ticker := time.NewTicker(o.opts.PollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		st, err := o.api.SyncStatus(ctx, o.opts.PollTimeout)
		if err != nil {
			switch {
			case shared.IsCancelled(err):
			case shared.IsAuthRejected(err):
				o.finish(State{Status: StatusIdle})
			default:
				o.logger.Warn("sync status poll failed", "attempt", attempt, "err", err)
				o.finish(State{Status: StatusError, Message: "Lost contact with sync service", ErrorDetail: err.Error()})
			}
			return
		}

		switch st.Status {
		case StatusCompleted:
			o.finish(State{
				Status:      StatusCompleted,
				Message:     st.Message,
				NeedsReload: true,
				FileSizeMB:  st.FileSizeMB,
			})
			o.scheduleReload()
			return
		case StatusUpToDate:
			o.finish(State{Status: StatusUpToDate, Message: st.Message})
			return
		case StatusError:
			o.finish(State{Status: StatusError, Message: st.Message, ErrorDetail: detail(st.Error, st.Message)})
			return
		case StatusChecking, StatusDownloading:
			// Still working; clear any transient error and keep going.
			o.transition(State{
				Status:     st.Status,
				Message:    st.Message,
				Progress:   st.Progress,
				IsSyncing:  true,
				FileSizeMB: st.FileSizeMB,
			})
		default:
			o.finish(State{Status: StatusIdle})
			return
		}

		if attempt >= o.opts.MaxAttempts {
			o.finish(State{
				Status:      StatusError,
				Message:     "Sync timed out",
				ErrorDetail: "sync did not finish within the polling window",
			})
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// transition replaces the state while a run is still in flight.
func (o *Orchestrator) transition(next State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.state = next
}

// finish records a terminal state and clears the run guard so the consumer
// may retry manually.
func (o *Orchestrator) finish(next State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.state = next
	o.running = false
}

// scheduleReload arms the one-shot reload signal after the grace delay.
func (o *Orchestrator) scheduleReload() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.reloadTimer = time.AfterFunc(o.opts.ReloadGrace, func() {
		select {
		case o.reload <- struct{}{}:
		default:
		}
	})
}

func detail(errText, message string) string {
	if errText != "" {
		return errText
	}
	return message
}
