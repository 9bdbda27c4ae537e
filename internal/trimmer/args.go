package trimmer

import (
	"strconv"

	"clipcatch/internal/model"
)

// BuildTrimArgs constructs the ffmpeg argument list for a sub-range
// re-encode. The range is seeked on the input and bounded with -to, then
// re-encoded to H.264/AAC rather than stream-copied so cuts land exactly on
// the requested times instead of the nearest keyframe.
func BuildTrimArgs(req model.TrimRequest, outputPath string, includeProgress bool) []string {
	args := []string{
		"-y",
		"-ss", formatSeconds(req.StartSec),
		"-to", formatSeconds(req.EndSec),
		"-i", req.SourcePath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-movflags", "+faststart",
	}

	if includeProgress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}

	args = append(args, outputPath)
	return args
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
