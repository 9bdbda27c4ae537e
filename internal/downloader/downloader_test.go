package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/util"
)

type recordingReporter struct {
	updates []progress.Update
	logs    []progress.Log
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) { r.updates = append(r.updates, u) }
func (r *recordingReporter) Log(l progress.Log)       { r.logs = append(r.logs, l) }
func (r *recordingReporter) Result(p progress.Result) { r.results = append(r.results, p) }

// fakeYTDLP simulates yt-dlp: metadata on --dump-json, file creation plus
// progress lines and a printed final path on download.
type fakeYTDLP struct {
	t            *testing.T
	metaJSON     string
	fileName     string
	printPath    bool
	failMeta     bool
	failDownload bool
	skipCreate   bool
}

func (f *fakeYTDLP) Run(ctx context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	if contains(spec.Args, "--dump-json") {
		if f.failMeta {
			return util.CmdResult{Code: 1, Err: errors.New("exit 1")}, errors.New("command failed (exit 1)")
		}
		return util.CmdResult{Stdout: []byte(f.metaJSON)}, nil
	}

	if f.failDownload {
		return util.CmdResult{Code: 1, Err: errors.New("exit 1")}, errors.New("command failed (exit 1)")
	}

	// -o <template>; the template's directory is the downloads dir.
	tmpl := argAfter(spec.Args, "-o")
	if tmpl == "" {
		f.t.Fatal("download run missing -o template")
	}
	outPath := filepath.Join(filepath.Dir(tmpl), f.fileName)
	if !f.skipCreate {
		if err := os.WriteFile(outPath, []byte("video-bytes"), 0o644); err != nil {
			f.t.Fatal(err)
		}
	}

	if spec.StdoutLine != nil {
		spec.StdoutLine("[download]  50.0% of 10.00MiB at  1.0MiB/s ETA 00:04")
		spec.StdoutLine("[download] 100.0% of 10.00MiB at  1.0MiB/s ETA 00:00")
		if f.printPath {
			spec.StdoutLine(outPath)
		}
	}
	return util.CmdResult{}, nil
}

const metaJSON = `{"id":"abc123","title":"Test Clip","uploader":"someone","duration":600,"ext":"mp4"}`

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("captures printed output path", func(t *testing.T) {
		dir := t.TempDir()
		rep := &recordingReporter{}
		f := New("yt-dlp", dir,
			WithRunner(&fakeYTDLP{t: t, metaJSON: metaJSON, fileName: "Test Clip.mp4", printPath: true}),
			WithReporter(rep),
		)

		df, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v", Quality: model.QualityBest}, "job1")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if want := filepath.Join(dir, "Test Clip.mp4"); df.Path != want {
			t.Errorf("Fetch() path = %q, want %q", df.Path, want)
		}
		if df.Title != "Test Clip" {
			t.Errorf("Fetch() title = %q, want %q", df.Title, "Test Clip")
		}
		if df.DurationSec != 600 {
			t.Errorf("Fetch() duration = %v, want 600", df.DurationSec)
		}
		if df.Bytes == 0 {
			t.Error("Fetch() bytes = 0, want > 0")
		}

		assertMonotonicProgress(t, rep.updates)
	})

	t.Run("relative downloads dir resolved to absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		rel, err := filepath.Rel(wd, t.TempDir())
		if err != nil {
			t.Skipf("no relative path from %s: %v", wd, err)
		}

		f := New("yt-dlp", rel,
			WithRunner(&fakeYTDLP{t: t, metaJSON: metaJSON, fileName: "Test Clip.mp4", printPath: true}),
		)

		df, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v", Quality: model.QualityBest}, "job1")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		// The printed path must be recognized, not dropped in favor of the
		// title-match fallback.
		if !filepath.IsAbs(df.Path) {
			t.Errorf("Fetch() path = %q, want absolute", df.Path)
		}
		if base := filepath.Base(df.Path); base != "Test Clip.mp4" {
			t.Errorf("Fetch() base = %q, want Test Clip.mp4", base)
		}
	})

	t.Run("falls back to title match when no path printed", func(t *testing.T) {
		dir := t.TempDir()
		f := New("yt-dlp", dir,
			WithRunner(&fakeYTDLP{t: t, metaJSON: metaJSON, fileName: "Test Clip.mp4", printPath: false}),
		)

		df, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v", Quality: model.QualityBest}, "job1")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if want := filepath.Join(dir, "Test Clip.mp4"); df.Path != want {
			t.Errorf("Fetch() path = %q, want %q", df.Path, want)
		}
	})

	t.Run("metadata failure", func(t *testing.T) {
		f := New("yt-dlp", t.TempDir(),
			WithRunner(&fakeYTDLP{t: t, failMeta: true}),
		)
		_, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v"}, "job1")
		if !errors.Is(err, ErrNoMetadata) {
			t.Errorf("Fetch() error = %v, want ErrNoMetadata", err)
		}
	})

	t.Run("missing output reported distinctly", func(t *testing.T) {
		f := New("yt-dlp", t.TempDir(),
			WithRunner(&fakeYTDLP{t: t, metaJSON: metaJSON, fileName: "Test Clip.mp4", skipCreate: true}),
		)
		_, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v"}, "job1")
		if !errors.Is(err, ErrOutputMissing) {
			t.Errorf("Fetch() error = %v, want ErrOutputMissing", err)
		}
	})

	t.Run("download failure", func(t *testing.T) {
		f := New("yt-dlp", t.TempDir(),
			WithRunner(&fakeYTDLP{t: t, metaJSON: metaJSON, failDownload: true}),
		)
		_, err := f.Fetch(ctx, model.DownloadRequest{URL: "https://example.com/v"}, "job1")
		if err == nil || !strings.Contains(err.Error(), "downloader failed") {
			t.Errorf("Fetch() error = %v, want downloader failure", err)
		}
	})
}

func TestParseInfoJSON(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		info, err := parseInfoJSON(metaJSON)
		if err != nil {
			t.Fatalf("parseInfoJSON() error: %v", err)
		}
		if info.ID != "abc123" {
			t.Errorf("ID = %q, want abc123", info.ID)
		}
	})

	t.Run("JSON on last line after noise", func(t *testing.T) {
		info, err := parseInfoJSON("WARNING: something\n" + metaJSON)
		if err != nil {
			t.Fatalf("parseInfoJSON() error: %v", err)
		}
		if info.Title != "Test Clip" {
			t.Errorf("Title = %q, want Test Clip", info.Title)
		}
	})

	t.Run("no JSON at all", func(t *testing.T) {
		if _, err := parseInfoJSON("nothing useful"); err == nil {
			t.Error("parseInfoJSON() expected error")
		}
	})
}

// assertMonotonicProgress checks that known percentages never decrease and
// stay within [0, 100].
func assertMonotonicProgress(t *testing.T, updates []progress.Update) {
	t.Helper()
	last := -1.0
	for _, u := range updates {
		if u.Stage != progress.StageDownloading || u.Percent < 0 {
			continue
		}
		if u.Percent < last {
			t.Errorf("progress went backwards: %v after %v", u.Percent, last)
		}
		if u.Percent > 100 {
			t.Errorf("progress out of bounds: %v", u.Percent)
		}
		last = u.Percent
	}
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
