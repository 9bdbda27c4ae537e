package downloader

import (
	"testing"
	"time"

	"clipcatch/internal/progress"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		jobID       string
		wantOk      bool
		wantPercent float64
		wantETA     *time.Duration
	}{
		{
			name:        "typical download progress",
			line:        "[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04",
			jobID:       "job1",
			wantOk:      true,
			wantPercent: 45.2,
			wantETA:     durationPtr(4 * time.Second),
		},
		{
			name:        "progress without ETA",
			line:        "[download]  25.0% of 5.00MiB at  500.00KiB/s",
			jobID:       "job2",
			wantOk:      true,
			wantPercent: 25.0,
		},
		{
			name:        "progress with HH:MM:SS ETA",
			line:        "[download]  10.5% of 100.00MiB at  1.00MiB/s ETA 01:23:45",
			jobID:       "job3",
			wantOk:      true,
			wantPercent: 10.5,
			wantETA:     durationPtr(1*time.Hour + 23*time.Minute + 45*time.Second),
		},
		{
			name:   "destination notice is not progress",
			line:   "[download] Destination: /data/downloads/clip.mp4",
			jobID:  "job4",
			wantOk: false,
		},
		{
			name:   "non-download line",
			line:   "[ExtractorError] Unable to download webpage",
			jobID:  "job5",
			wantOk: false,
		},
		{
			name:   "empty line",
			line:   "",
			jobID:  "job6",
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := ParseProgress(tt.line, tt.jobID)

			if ok != tt.wantOk {
				t.Fatalf("ParseProgress() ok = %v, want %v", ok, tt.wantOk)
			}
			if !tt.wantOk {
				return
			}

			if u.JobID != tt.jobID {
				t.Errorf("ParseProgress() JobID = %v, want %v", u.JobID, tt.jobID)
			}
			if u.Percent != tt.wantPercent {
				t.Errorf("ParseProgress() Percent = %v, want %v", u.Percent, tt.wantPercent)
			}
			if u.Stage != progress.StageDownloading {
				t.Errorf("ParseProgress() Stage = %v, want StageDownloading", u.Stage)
			}
			if tt.wantETA != nil {
				if u.ETA == nil || *u.ETA != *tt.wantETA {
					t.Errorf("ParseProgress() ETA = %v, want %v", u.ETA, *tt.wantETA)
				}
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "00:04", want: 4 * time.Second},
		{in: "02:30", want: 2*time.Minute + 30*time.Second},
		{in: "01:23:45", want: 1*time.Hour + 23*time.Minute + 45*time.Second},
		{in: "42", want: 42 * time.Second},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}
