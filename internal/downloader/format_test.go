package downloader

import (
	"testing"

	"clipcatch/internal/model"
)

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		name    string
		quality model.Quality
		want    string
	}{
		{
			name:    "highest maps to best combined",
			quality: model.QualityHighest,
			want:    "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
		},
		{
			name:    "lowest maps to worst combined",
			quality: model.QualityLowest,
			want:    "worstvideo[ext=mp4]+worstaudio[ext=m4a]/worst[ext=mp4]",
		},
		{
			name:    "best maps to single container",
			quality: model.QualityBest,
			want:    "best[ext=mp4]",
		},
		{
			name:    "unrecognized value falls back to single container",
			quality: model.Quality("4k-hdr"),
			want:    "best[ext=mp4]",
		},
		{
			name:    "empty value falls back to single container",
			quality: model.Quality(""),
			want:    "best[ext=mp4]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSelector(tt.quality); got != tt.want {
				t.Errorf("FormatSelector(%q) = %q, want %q", tt.quality, got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	for _, valid := range []string{"best", "highest", "lowest"} {
		if _, err := model.ParseQuality(valid); err != nil {
			t.Errorf("ParseQuality(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := model.ParseQuality("ultra"); err == nil {
		t.Error("ParseQuality(\"ultra\") expected error, got nil")
	}
}
