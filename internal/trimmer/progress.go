package trimmer

import (
	"strconv"
	"strings"

	"clipcatch/internal/progress"
)

// ProgressState accumulates ffmpeg -progress key=value lines across calls.
// ffmpeg emits a block of keys followed by a "progress=continue|end" marker;
// an Update is produced at each marker.
type ProgressState struct {
	OutTimeMs int64 // microseconds, despite the key name
	SpeedStr  string
	TotalSize int64
}

// UpdateFromLine feeds one stdout line into the state. clipLenSec is the
// nominal length of the clip being produced and provides the denominator for
// the percent computation.
func (ps *ProgressState) UpdateFromLine(line, jobID string, clipLenSec float64) (u progress.Update, ok bool) {
	kv := strings.SplitN(line, "=", 2)
	if len(kv) != 2 {
		return progress.Update{}, false
	}

	key := strings.TrimSpace(kv[0])
	val := strings.TrimSpace(kv[1])

	switch key {
	case "out_time_ms":
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.OutTimeMs = v
		}
	case "speed":
		ps.SpeedStr = val
	case "total_size":
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.TotalSize = v
		}
	case "progress":
		percent := -1.0
		if clipLenSec > 0 {
			den := clipLenSec * 1_000_000
			percent = (float64(ps.OutTimeMs) / den) * 100.0
			if percent > 100 {
				percent = 100
			}
		}

		var speedPtr *string
		if ps.SpeedStr != "" {
			s := ps.SpeedStr
			speedPtr = &s
		}
		var bytesPtr *int64
		if ps.TotalSize > 0 {
			b := ps.TotalSize
			bytesPtr = &b
		}

		return progress.Update{
			JobID:   jobID,
			Stage:   progress.StageTrimming,
			Percent: percent,
			Speed:   speedPtr,
			Bytes:   bytesPtr,
			Message: "Trimming",
		}, true
	}

	return progress.Update{}, false
}
