package metrics

import (
	"sync"
	"time"
)

type callStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures in-memory metrics about feed calls, forum actions and cycles, and
// forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu       sync.Mutex
	feed     map[string]*callStats
	forum    map[string]*callStats
	cycles   map[string]*callStats
	outcomes map[string]map[string]int
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		feed:     make(map[string]*callStats),
		forum:    make(map[string]*callStats),
		cycles:   make(map[string]*callStats),
		outcomes: make(map[string]map[string]int),
		otel:     otel,
	}
}

// Snapshot is a copy of the stats for one feed operation, forum action or job.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// RecordFeedAttempt counts a feed call (operation is e.g. "scoreboards" or "game").
func (r *Recorder) RecordFeedAttempt(feed, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.feed, feed+"/"+operation, duration, err)
	if r.otel != nil {
		r.otel.recordFeedAttempt(feed, operation, duration, err)
	}
}

// RecordForumAction counts a forum call (action is e.g. "live_thread", "summary", "lock").
func (r *Recorder) RecordForumAction(action string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.forum, action, duration, err)
	if r.otel != nil {
		r.otel.recordForumAction(action, duration, err)
	}
}

// RecordCycle counts one run of a job.
func (r *Recorder) RecordCycle(job string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.cycles, job, duration, err)
	if r.otel != nil {
		r.otel.recordCycle(job, duration, err)
	}
}

// RecordOutcome adds n records with the given outcome ("created", "updated", ...) for a job.
func (r *Recorder) RecordOutcome(job, outcome string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	byOutcome, ok := r.outcomes[job]
	if !ok {
		byOutcome = make(map[string]int)
		r.outcomes[job] = byOutcome
	}
	byOutcome[outcome] += n
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordOutcome(job, outcome, n)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Feed returns stats for a feed operation.
func (r *Recorder) Feed(feed, operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.feed, feed+"/"+operation)
}

// Forum returns stats for a forum action.
func (r *Recorder) Forum(action string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.forum, action)
}

// Cycle returns stats for a job.
func (r *Recorder) Cycle(job string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.cycles, job)
}

// Outcome returns the running total of an outcome for a job.
func (r *Recorder) Outcome(job, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[job][outcome]
}

func (r *Recorder) record(m map[string]*callStats, key string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := m[key]
	if !ok {
		stats = &callStats{}
		m[key] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
}

func (r *Recorder) snapshot(m map[string]*callStats, key string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := m[key]; ok && stats != nil {
		return Snapshot{Calls: stats.calls, Errors: stats.errors, LastLatency: stats.lastLatency}
	}
	return Snapshot{}
}
