// Package downloader fetches videos with yt-dlp (or youtube-dl) as a
// subprocess and resolves the resulting file on disk.
package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/util"
)

var (
	// ErrNoMetadata means the extraction tool produced no usable metadata
	// (network failure, unsupported site, malformed URL).
	ErrNoMetadata = errors.New("could not extract video information")
	// ErrOutputMissing means the tool reported success but the expected
	// output file could not be located. Reported distinctly from tool
	// failures so the caller can tell the two apart.
	ErrOutputMissing = errors.New("download finished but output file not found")
)

// Fetcher downloads videos into a fixed downloads directory.
type Fetcher struct {
	dlPath       string
	downloadsDir string
	cookieFile   string
	verbose      bool
	runner       util.CmdRunner
	reporter     progress.Reporter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCookieFile passes an externally supplied cookie file to the extraction
// tool for age- or login-restricted content. Treated as opaque.
func WithCookieFile(path string) Option {
	return func(f *Fetcher) { f.cookieFile = path }
}

// WithVerbose streams subprocess output to the terminal.
func WithVerbose(v bool) Option {
	return func(f *Fetcher) { f.verbose = v }
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(f *Fetcher) { f.runner = r }
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(f *Fetcher) { f.reporter = rp }
}

// New constructs a Fetcher writing into downloadsDir. The directory is
// resolved to an absolute path so the tool's printed output path is
// recognized as such; a relative path would be discarded and force the
// title-match fallback.
func New(dlPath, downloadsDir string, opts ...Option) *Fetcher {
	if abs, err := filepath.Abs(downloadsDir); err == nil {
		downloadsDir = abs
	}
	f := &Fetcher{
		dlPath:       dlPath,
		downloadsDir: downloadsDir,
		runner:       util.NewDefaultRunner(),
		reporter:     progress.Discard,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch downloads the requested video and returns the saved file. jobID tags
// progress events for the attached reporter.
func (f *Fetcher) Fetch(ctx context.Context, req model.DownloadRequest, jobID string) (model.DownloadedFile, error) {
	if f.dlPath == "" {
		return model.DownloadedFile{}, errors.New("downloader path is required")
	}
	if err := util.EnsureDir(f.downloadsDir); err != nil {
		return model.DownloadedFile{}, fmt.Errorf("ensure downloads dir: %w", err)
	}

	selector := FormatSelector(req.Quality)

	f.reporter.Update(progress.Update{
		JobID:   jobID,
		Stage:   progress.StageMetadata,
		Percent: -1,
		Message: "Fetching metadata",
	})

	info, err := f.fetchMetadata(ctx, req.URL, selector)
	if err != nil {
		return model.DownloadedFile{}, err
	}

	outPath, err := f.download(ctx, req.URL, selector, info, jobID)
	if err != nil {
		return model.DownloadedFile{}, err
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		return model.DownloadedFile{}, fmt.Errorf("%w: %s", ErrOutputMissing, outPath)
	}

	return model.DownloadedFile{
		Path:        outPath,
		Title:       info.Title,
		Bytes:       fi.Size(),
		DurationSec: info.DurationSec,
	}, nil
}

// fetchMetadata asks the tool for JSON metadata without downloading.
func (f *Fetcher) fetchMetadata(ctx context.Context, url, selector string) (model.VideoInfo, error) {
	args := []string{
		"--dump-json",
		"-f", selector,
		"--no-playlist",
	}
	args = f.appendCookieArgs(args)
	args = append(args, url)

	res, runErr := f.runner.Run(ctx, util.CmdSpec{
		Path:    f.dlPath,
		Args:    args,
		Verbose: f.verbose,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return model.VideoInfo{}, fmt.Errorf("%w: %v", ErrNoMetadata, runErr)
	}

	info, err := parseInfoJSON(string(res.Stdout))
	if err != nil {
		return model.VideoInfo{}, fmt.Errorf("%w: %v", ErrNoMetadata, err)
	}
	return info, nil
}

// parseInfoJSON decodes yt-dlp --dump-json output. The tool sometimes mixes
// status lines into stdout, so scanning falls back to the last line that
// decodes into an object with an ID.
func parseInfoJSON(data string) (model.VideoInfo, error) {
	data = strings.TrimSpace(data)
	var info model.VideoInfo
	if err := json.Unmarshal([]byte(data), &info); err == nil && info.ID != "" {
		return info, nil
	}
	lines := strings.Split(data, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		var tmp model.VideoInfo
		if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
			return tmp, nil
		}
	}
	return model.VideoInfo{}, errors.New("no JSON metadata in tool output")
}

// download runs the actual fetch. The final path is taken from the tool
// itself via --print after_move:filepath; matching directory entries against
// the title is kept only as a fallback for youtube-dl, which lacks --print.
func (f *Fetcher) download(ctx context.Context, url, selector string, info model.VideoInfo, jobID string) (string, error) {
	outTemplate := filepath.Join(f.downloadsDir, "%(title)s.%(ext)s")
	args := []string{
		"-f", selector,
		"-o", outTemplate,
		"--no-playlist",
		"--newline",
		"--no-simulate",
		"--print", "after_move:filepath",
	}
	args = f.appendCookieArgs(args)
	args = append(args, url)

	var printedPath string
	_, runErr := f.runner.Run(ctx, util.CmdSpec{
		Path:    f.dlPath,
		Args:    args,
		Verbose: f.verbose,
		StdoutLine: func(line string) {
			if u, ok := ParseProgress(line, jobID); ok {
				f.reporter.Update(u)
				return
			}
			f.reporter.Log(progress.Log{JobID: jobID, Stream: progress.StreamStdout, Line: line})
			if p := strings.TrimSpace(line); p != "" && !strings.HasPrefix(p, "[") && filepath.IsAbs(p) {
				printedPath = p
			}
		},
		StderrLine: func(line string) {
			f.reporter.Log(progress.Log{JobID: jobID, Stream: progress.StreamStderr, Line: line})
		},
	})
	if runErr != nil {
		return "", fmt.Errorf("downloader failed: %w", runErr)
	}

	if printedPath != "" {
		return printedPath, nil
	}
	return SelectByTitle(f.downloadsDir, info.Title)
}

func (f *Fetcher) appendCookieArgs(args []string) []string {
	if f.cookieFile == "" {
		return args
	}
	return append(args, "--cookies", f.cookieFile)
}
