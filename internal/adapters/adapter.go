package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"wheelgen/internal/playlist"
)

// ApiAdapter is the read side of a music platform: enough to list the
// user's playlists and pull the tracks of one of them.
type ApiAdapter interface {
	Authenticate(ctx context.Context) error
	IsAuthenticated() bool
	PlatformName() string

	GetUserPlaylists(ctx context.Context) ([]playlist.Playlist, error)
	GetPlaylistItems(ctx context.Context, playlistID string) ([]playlist.Track, error)
}

// PlatformType represents the supported music platforms
type PlatformType string

const (
	SpotifyPlatform PlatformType = "spotify"
	YoutubePlatform PlatformType = "youtube"
)

// Credentials are the OAuth client settings of one platform.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// NewApiAdapter is a factory function that creates a new adapter for the specified platform
func NewApiAdapter(platform string, creds Credentials, logger *log.Logger) (ApiAdapter, error) {
	switch PlatformType(strings.ToLower(platform)) {
	case SpotifyPlatform:
		return NewSpotifyAdapter(creds, logger)
	case YoutubePlatform:
		return NewYouTubeAdapter(creds, logger)
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}
