package util

import (
	"errors"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "https URL passes through",
			in:   "https://www.youtube.com/watch?v=abc123",
			want: "https://www.youtube.com/watch?v=abc123",
		},
		{
			name: "http URL accepted",
			in:   "http://example.com/video",
			want: "http://example.com/video",
		},
		{
			name: "missing scheme assumes https",
			in:   "youtube.com/watch?v=abc123",
			want: "https://youtube.com/watch?v=abc123",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  https://example.com/v  ",
			want: "https://example.com/v",
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "blank",
			in:      "   ",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			in:      "ftp://example.com/video",
			wantErr: true,
		},
		{
			name:    "file scheme rejected",
			in:      "file:///etc/passwd",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateURL(%q) = %q, want error", tt.in, got)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("err = %v, want ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateURL(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ValidateURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
