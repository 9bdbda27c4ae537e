// Package pipeline orchestrates the ClipCatch workflow: fetch a URL into the
// downloads directory, or cut a trimmed clip from a file already there.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clipcatch/internal/downloader"
	"clipcatch/internal/library"
	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/trimmer"
	"clipcatch/internal/util"
)

// Service wires the Fetcher, Trimmer, and Library together and tags each
// operation with a job ID for progress reporting. It never prints; all
// outcomes flow back as return values and reporter events.
type Service struct {
	fetcher  *downloader.Fetcher
	trimmer  *trimmer.Trimmer
	library  *library.Library
	reporter progress.Reporter
	newJobID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithFetcher sets the download component.
func WithFetcher(f *downloader.Fetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithTrimmer sets the trim component.
func WithTrimmer(t *trimmer.Trimmer) Option {
	return func(s *Service) { s.trimmer = t }
}

// WithLibrary sets the filesystem bookkeeping layer.
func WithLibrary(l *library.Library) Option {
	return func(s *Service) { s.library = l }
}

// WithReporter attaches a progress reporter for job lifecycle events.
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) { s.reporter = rp }
}

// WithJobIDs overrides job ID generation (useful for testing).
func WithJobIDs(fn func() string) Option {
	return func(s *Service) { s.newJobID = fn }
}

// New constructs a Service with the provided options.
func New(opts ...Option) *Service {
	s := &Service{
		reporter: progress.Discard,
		newJobID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewJobID allocates a job ID without starting work, so a caller can hand
// the ID to a progress consumer before the operation begins.
func (s *Service) NewJobID() string {
	return s.newJobID()
}

// Download validates the URL and fetches it into the downloads directory.
// jobID may be empty, in which case a fresh ID is allocated. The same ID
// tags every progress event and the terminal Result.
func (s *Service) Download(ctx context.Context, req model.DownloadRequest, jobID string) (model.DownloadedFile, string, error) {
	if s.fetcher == nil {
		return model.DownloadedFile{}, "", errors.New("no fetcher configured")
	}
	if jobID == "" {
		jobID = s.newJobID()
	}

	normalized, err := util.ValidateURL(req.URL)
	if err != nil {
		s.reporter.Result(progress.Result{JobID: jobID, Err: err})
		return model.DownloadedFile{}, jobID, err
	}
	req.URL = normalized

	df, err := s.fetcher.Fetch(ctx, req, jobID)
	if err != nil {
		s.reporter.Result(progress.Result{JobID: jobID, Err: err})
		return model.DownloadedFile{}, jobID, err
	}

	s.reporter.Update(progress.Update{
		JobID:   jobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Saved: %s", df.Title),
	})
	s.reporter.Result(progress.Result{JobID: jobID, OutputPath: df.Path, Bytes: df.Bytes})
	return df, jobID, nil
}

// Trim resolves the named download and cuts [startSec, endSec) out of it.
func (s *Service) Trim(ctx context.Context, sourceName string, startSec, endSec float64, jobID string) (model.TrimmedFile, string, error) {
	if s.trimmer == nil || s.library == nil {
		return model.TrimmedFile{}, "", errors.New("no trimmer configured")
	}
	if jobID == "" {
		jobID = s.newJobID()
	}

	srcPath, err := s.library.ResolveDownload(sourceName)
	if err != nil {
		s.reporter.Result(progress.Result{JobID: jobID, Err: err})
		return model.TrimmedFile{}, jobID, err
	}

	tf, err := s.trimmer.Trim(ctx, model.TrimRequest{
		SourcePath: srcPath,
		StartSec:   startSec,
		EndSec:     endSec,
	}, jobID)
	if err != nil {
		s.reporter.Result(progress.Result{JobID: jobID, Err: err})
		return model.TrimmedFile{}, jobID, err
	}

	s.reporter.Update(progress.Update{
		JobID:   jobID,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Trimmed: %s", sourceName),
	})
	s.reporter.Result(progress.Result{JobID: jobID, OutputPath: tf.Path, Bytes: tf.Bytes})
	return tf, jobID, nil
}

// Duration probes the duration of the named download. The web page uses it
// to set the end-time control's default and upper bound.
func (s *Service) Duration(ctx context.Context, sourceName string) (float64, error) {
	if s.trimmer == nil || s.library == nil {
		return 0, errors.New("no trimmer configured")
	}
	srcPath, err := s.library.ResolveDownload(sourceName)
	if err != nil {
		return 0, err
	}
	return s.trimmer.ProbeDuration(ctx, srcPath)
}
