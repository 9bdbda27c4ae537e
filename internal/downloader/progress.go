package downloader

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"clipcatch/internal/progress"
)

// ParseProgress parses yt-dlp progress output lines such as
//
//	[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04
//
// and returns a progress.Update with ok=true when the line carries download
// progress. A percent of -1 means the total size was unknown.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return progress.Update{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))

	percent := -1.0
	idx := strings.Index(rest, "%")
	if idx == -1 {
		// Destination / resume notices also start with [download].
		return progress.Update{}, false
	}
	if p, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
		percent = p
	}

	var speed *string
	if i := strings.Index(rest, " at "); i != -1 {
		part := rest[i+4:]
		if j := strings.Index(part, " "); j != -1 {
			s := strings.TrimSpace(part[:j])
			speed = &s
		}
	}

	var eta *time.Duration
	if i := strings.Index(rest, "ETA "); i != -1 {
		etaStr := strings.TrimSpace(rest[i+4:])
		if j := strings.Index(etaStr, " "); j != -1 {
			etaStr = etaStr[:j]
		}
		if d, err := parseClock(etaStr); err == nil {
			eta = &d
		}
	}

	return progress.Update{
		JobID:   jobID,
		Stage:   progress.StageDownloading,
		Percent: percent,
		Speed:   speed,
		ETA:     eta,
		Message: "Downloading",
	}, true
}

// parseClock parses duration strings like "00:04" or "01:23:45".
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err := errors.Join(err1, err2); err != nil {
			return 0, err
		}
		return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		sec, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return 0, err
		}
		return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	default:
		sec, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		return time.Duration(sec) * time.Second, nil
	}
}
