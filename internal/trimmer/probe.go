package trimmer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"clipcatch/internal/util"
)

type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration reads the container duration of the file at path, in
// seconds, using ffprobe. The web layer uses it to bound the end-time
// control before rendering.
func (t *Trimmer) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if t.ffprobePath == "" {
		return 0, errors.New("ffprobe path is required")
	}

	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		path,
	}
	res, runErr := t.runner.Run(ctx, util.CmdSpec{
		Path:    t.ffprobePath,
		Args:    args,
		Verbose: t.verbose,
	})
	if runErr != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", runErr)
	}

	var pf probeFormat
	if err := json.Unmarshal(res.Stdout, &pf); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if pf.Format.Duration == "" {
		return 0, errors.New("no duration in ffprobe output")
	}
	d, err := strconv.ParseFloat(pf.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", pf.Format.Duration, err)
	}
	return d, nil
}
