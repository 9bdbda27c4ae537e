package model

import "fmt"

// Quality is the user-facing quality preference for a download.
type Quality string

const (
	QualityBest    Quality = "best"    // best single mp4 container (default)
	QualityHighest Quality = "highest" // best combined video+audio
	QualityLowest  Quality = "lowest"  // worst combined video+audio
)

// ParseQuality converts a raw string into a Quality.
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case QualityBest, QualityHighest, QualityLowest:
		return Quality(s), nil
	default:
		return "", fmt.Errorf("invalid quality %q (valid: best|highest|lowest)", s)
	}
}

// DownloadRequest describes a single fetch interaction. Created per button
// press or CLI invocation; never persisted.
type DownloadRequest struct {
	URL     string
	Quality Quality
}

// DownloadedFile is the result of a successful fetch. Its lifetime is the
// file on disk; there is no metadata store behind it.
type DownloadedFile struct {
	Path        string
	Title       string
	Bytes       int64
	DurationSec float64 // 0 if unknown
}

// TrimRequest describes a sub-clip extraction from an already-downloaded file.
type TrimRequest struct {
	SourcePath string
	StartSec   float64
	EndSec     float64
}

// TrimmedFile is the result of a successful trim.
type TrimmedFile struct {
	Path        string
	Bytes       int64
	DurationSec float64 // nominal End-Start; encoder tolerance applies
}

// VideoInfo mirrors the subset of yt-dlp --dump-json output that we use.
type VideoInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	DurationSec float64 `json:"duration"`
	Ext         string  `json:"ext"`
	WebpageURL  string  `json:"webpage_url"`
}

// LibraryEntry is one file in the downloads or trimmed directory, as listed
// for the web page.
type LibraryEntry struct {
	Name    string `json:"name"`
	Bytes   int64  `json:"bytes"`
	ModUnix int64  `json:"mod_unix"`
}
