package playlist

import (
	"strings"
	"time"
)

// Track is one entry of a platform playlist, reduced to what a song sheet
// needs plus the identifiers used to fetch it.
type Track struct {
	Name    string
	Artists []string
	Album   string
	ID      string
	URL     string
}

// ArtistLine joins the track artists the way a song sheet lists them.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// Playlist represents a collection of tracks
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	CreatedAt   time.Time
}
