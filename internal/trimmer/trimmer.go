// Package trimmer extracts a time range from a media file with ffmpeg,
// re-encoding the sub-clip into a fresh mp4.
package trimmer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/util"
)

// ValidationError reports an invalid trim range. It is rejected before any
// external call; no output file is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid trim range: " + e.Reason
}

// Trimmer cuts sub-clips into a fixed output directory.
type Trimmer struct {
	ffmpegPath  string
	ffprobePath string
	trimmedDir  string
	verbose     bool
	runner      util.CmdRunner
	reporter    progress.Reporter
}

// Option configures a Trimmer.
type Option func(*Trimmer)

// WithVerbose streams subprocess output to the terminal.
func WithVerbose(v bool) Option {
	return func(t *Trimmer) { t.verbose = v }
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(t *Trimmer) { t.runner = r }
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(t *Trimmer) { t.reporter = rp }
}

// New constructs a Trimmer writing into trimmedDir.
func New(ffmpegPath, ffprobePath, trimmedDir string, opts ...Option) *Trimmer {
	t := &Trimmer{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		trimmedDir:  trimmedDir,
		runner:      util.NewDefaultRunner(),
		reporter:    progress.Discard,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// OutputName derives the trimmed file name from the source file name.
func OutputName(sourcePath string) string {
	return "trimmed_" + filepath.Base(sourcePath)
}

// Trim validates the requested range against the probed source duration and
// produces the sub-clip. On any failure after the cut starts, the incomplete
// output file is removed.
func (t *Trimmer) Trim(ctx context.Context, req model.TrimRequest, jobID string) (model.TrimmedFile, error) {
	if t.ffmpegPath == "" {
		return model.TrimmedFile{}, errors.New("ffmpeg path is required")
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		return model.TrimmedFile{}, fmt.Errorf("source file: %w", err)
	}

	duration, err := t.ProbeDuration(ctx, req.SourcePath)
	if err != nil {
		return model.TrimmedFile{}, err
	}
	if err := ValidateRange(req.StartSec, req.EndSec, duration); err != nil {
		return model.TrimmedFile{}, err
	}

	if err := util.EnsureDir(t.trimmedDir); err != nil {
		return model.TrimmedFile{}, fmt.Errorf("ensure trimmed dir: %w", err)
	}
	outPath := filepath.Join(t.trimmedDir, OutputName(req.SourcePath))

	clipLen := req.EndSec - req.StartSec
	state := &ProgressState{}
	args := BuildTrimArgs(req, outPath, true)

	_, runErr := t.runner.Run(ctx, util.CmdSpec{
		Path:    t.ffmpegPath,
		Args:    args,
		Verbose: t.verbose,
		StdoutLine: func(line string) {
			if u, ok := state.UpdateFromLine(line, jobID, clipLen); ok {
				t.reporter.Update(u)
			}
		},
		StderrLine: func(line string) {
			t.reporter.Log(progress.Log{JobID: jobID, Stream: progress.StreamStderr, Line: line})
		},
	})
	if runErr != nil {
		_ = util.RemoveIfExists(outPath)
		return model.TrimmedFile{}, fmt.Errorf("ffmpeg failed: %w", runErr)
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		return model.TrimmedFile{}, fmt.Errorf("stat output: %w", err)
	}

	return model.TrimmedFile{
		Path:        outPath,
		Bytes:       fi.Size(),
		DurationSec: clipLen,
	}, nil
}

// ValidateRange enforces 0 <= start < end <= duration.
func ValidateRange(start, end, duration float64) error {
	switch {
	case start < 0:
		return &ValidationError{Reason: fmt.Sprintf("start %.2fs is negative", start)}
	case start >= end:
		return &ValidationError{Reason: fmt.Sprintf("start %.2fs is not before end %.2fs", start, end)}
	case duration > 0 && end > duration:
		return &ValidationError{Reason: fmt.Sprintf("end %.2fs exceeds source duration %.2fs", end, duration)}
	default:
		return nil
	}
}
