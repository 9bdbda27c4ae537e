package progress

import "time"

// Stage identifies a high-level step of a job.
type Stage string

const (
	StageMetadata    Stage = "metadata"
	StageDownloading Stage = "downloading"
	StageTrimming    Stage = "trimming"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// LogStream indicates which stream produced a log line.
type LogStream int

const (
	StreamStdout LogStream = iota
	StreamStderr
)

// Update conveys progress or stage changes for a job.
// Percent is 0..100 when known; negative means unknown (indeterminate).
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64

	ETA     *time.Duration // optional
	Bytes   *int64         // optional cumulative bytes
	Speed   *string        // optional, e.g., "2.5MiB/s" or "1.2x"
	Message string         // short human-friendly status line
}

// Log is a raw subprocess line associated with a job.
type Log struct {
	JobID  string
	Stream LogStream
	Line   string
}

// Result is emitted once per job when it completes or fails.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by any observer of job progress: the terminal UI,
// the web tracker, or a test harness.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}

// Discard is a Reporter that ignores everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Update(Update) {}
func (discard) Log(Log)       {}
func (discard) Result(Result) {}
