package playlist

import "testing"

func TestTrackArtistLine(t *testing.T) {
	tests := []struct {
		name    string
		artists []string
		want    string
	}{
		{"single", []string{"Queen"}, "Queen"},
		{"several", []string{"Queen", "David Bowie"}, "Queen, David Bowie"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Track{Artists: tt.artists}).ArtistLine(); got != tt.want {
				t.Errorf("ArtistLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
