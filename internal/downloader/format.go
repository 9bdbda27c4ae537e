package downloader

import "clipcatch/internal/model"

// Format selector expressions passed to yt-dlp -f. Three tiers: best
// combined video+audio, worst combined video+audio, and a single best-effort
// mp4 container.
const (
	selectorHighest = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"
	selectorLowest  = "worstvideo[ext=mp4]+worstaudio[ext=m4a]/worst[ext=mp4]"
	selectorBest    = "best[ext=mp4]"
)

// FormatSelector maps a quality preference to a yt-dlp format selector.
// The mapping is total: any unrecognized value falls back to the single
// best-container tier.
func FormatSelector(q model.Quality) string {
	switch q {
	case model.QualityHighest:
		return selectorHighest
	case model.QualityLowest:
		return selectorLowest
	default:
		return selectorBest
	}
}
