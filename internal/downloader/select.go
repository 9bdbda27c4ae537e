package downloader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"clipcatch/internal/util"
)

// SelectByTitle finds a downloaded file in dir whose name contains the video
// title. This is the legacy youtube-dl fallback: substring matching can hit
// an unrelated pre-existing file sharing a fragment of the title, or miss
// entirely when the tool sanitizes the filename differently than the
// reported title. When the tool prints the final path we never get here.
// The title is matched in sanitized form, since output names never carry
// path separators or other forbidden characters the reported title may.
func SelectByTitle(dir, title string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	title = strings.TrimSpace(title)
	if title != "" {
		title = util.SanitizeFilename(title)
	}
	var candidates []string
	for _, e := range entries {
		if e.Type().IsRegular() && title != "" && strings.Contains(e.Name(), title) {
			candidates = append(candidates, filepath.Join(dir, e.Name()))
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w (title %q)", ErrOutputMissing, title)
	}

	// Prefer common playable containers when several names match.
	sort.SliceStable(candidates, func(i, j int) bool {
		pi := extPriority(filepath.Ext(candidates[i]))
		pj := extPriority(filepath.Ext(candidates[j]))
		if pi == pj {
			return candidates[i] < candidates[j]
		}
		return pi < pj
	})
	return candidates[0], nil
}

// extPriority returns a priority score for file extensions (lower = better).
func extPriority(ext string) int {
	switch strings.ToLower(ext) {
	case ".mp4":
		return 0
	case ".mkv":
		return 1
	case ".webm":
		return 2
	case ".mov":
		return 3
	case ".avi":
		return 4
	default:
		return 100
	}
}
