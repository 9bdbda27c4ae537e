package progress

import (
	"sync"
	"time"
)

// Snapshot is the poll-friendly view of one job's state.
type Snapshot struct {
	JobID      string  `json:"job_id"`
	Stage      Stage   `json:"stage"`
	Percent    float64 `json:"percent"` // 0..100, -1 when indeterminate
	Message    string  `json:"message"`
	OutputPath string  `json:"output_path,omitempty"`
	Error      string  `json:"error,omitempty"`
	Done       bool    `json:"done"`
	UpdatedAt  int64   `json:"updated_at"`
}

// Tracker records the latest state of each job so that pollers (the web page)
// can read it back. It implements Reporter. Percent never decreases within a
// stage; a stage change resets it. Entries are kept until Forget or until the
// tracker is asked to prune old finished jobs.
type Tracker struct {
	mu   sync.Mutex
	jobs map[string]*Snapshot
	now  func() time.Time
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		jobs: make(map[string]*Snapshot),
		now:  time.Now,
	}
}

// Update implements Reporter.
func (t *Tracker) Update(u Update) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.jobs[u.JobID]
	if s == nil {
		s = &Snapshot{JobID: u.JobID, Percent: -1}
		t.jobs[u.JobID] = s
	}

	if u.Stage != s.Stage {
		s.Stage = u.Stage
		s.Percent = -1
	}

	p := u.Percent
	if p > 100 {
		p = 100
	}
	if p >= 0 && p >= s.Percent {
		s.Percent = p
	}
	if u.Message != "" {
		s.Message = u.Message
	}
	s.UpdatedAt = t.now().Unix()
}

// Log implements Reporter. Raw subprocess lines are not retained.
func (t *Tracker) Log(Log) {}

// Result implements Reporter.
func (t *Tracker) Result(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.jobs[r.JobID]
	if s == nil {
		s = &Snapshot{JobID: r.JobID}
		t.jobs[r.JobID] = s
	}
	s.Done = true
	s.OutputPath = r.OutputPath
	if r.Err != nil {
		s.Stage = StageError
		s.Error = r.Err.Error()
	} else {
		s.Stage = StageCompleted
		s.Percent = 100
	}
	s.UpdatedAt = t.now().Unix()
}

// Get returns a copy of the snapshot for the given job ID.
func (t *Tracker) Get(jobID string) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.jobs[jobID]
	if !ok {
		return Snapshot{}, false
	}
	return *s, true
}

// Forget removes a job from the tracker.
func (t *Tracker) Forget(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, jobID)
}
