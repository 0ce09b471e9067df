package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"wheelgen/internal/playlist"
)

const spotifyPageSize = 50

// SpotifyAdapter adapts the Spotify API to our common adapter interface
type SpotifyAdapter struct {
	BaseAdapter
	client *spotify.Client
	creds  Credentials
}

// NewSpotifyAdapter creates a new SpotifyAdapter
func NewSpotifyAdapter(creds Credentials, logger *log.Logger) (*SpotifyAdapter, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret must be set (SPOTIFY_ID, SPOTIFY_SECRET)")
	}
	base, err := NewBaseAdapter("Spotify", logger)
	if err != nil {
		return nil, err
	}
	return &SpotifyAdapter{BaseAdapter: base, creds: creds}, nil
}

// Authenticate runs the browser login and keeps the resulting client.
func (a *SpotifyAdapter) Authenticate(ctx context.Context) error {
	auth := spotifyauth.New(
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(spotifyauth.ScopeUserReadPrivate, spotifyauth.ScopePlaylistReadPrivate),
		spotifyauth.WithClientID(a.creds.ClientID),
		spotifyauth.WithClientSecret(a.creds.ClientSecret),
	)

	err := a.awaitCallback(ctx, auth.AuthURL(a.state), func(r *http.Request) error {
		tok, err := auth.Token(r.Context(), a.state, r)
		if err != nil {
			return err
		}
		// The request context ends with the callback; token refreshes outlive it.
		a.client = spotify.New(auth.Client(context.Background(), tok))
		return nil
	})
	if err != nil {
		return err
	}
	a.SetAuthenticated(true)

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	a.logger.Info("logged in", "user", user.ID)
	return nil
}

// GetUserPlaylists retrieves all playlists for the authenticated user
func (a *SpotifyAdapter) GetUserPlaylists(ctx context.Context) ([]playlist.Playlist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var all []playlist.Playlist
	for offset := 0; ; offset += spotifyPageSize {
		page, err := a.client.CurrentUsersPlaylists(ctx, spotify.Limit(spotifyPageSize), spotify.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("error getting playlists: %w", err)
		}

		for _, p := range page.Playlists {
			all = append(all, playlist.Playlist{
				ID:          string(p.ID),
				Name:        p.Name,
				Description: p.Description,
				TrackCount:  int(p.Tracks.Total),
				CreatedAt:   time.Now(), // Spotify doesn't provide creation date easily
			})
		}

		if len(page.Playlists) < spotifyPageSize {
			break
		}
	}

	return all, nil
}

// GetPlaylistItems retrieves the tracks of a playlist. Podcast episodes are
// left out.
func (a *SpotifyAdapter) GetPlaylistItems(ctx context.Context, playlistID string) ([]playlist.Track, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var tracks []playlist.Track
	for offset := 0; ; offset += spotifyPageSize {
		page, err := a.client.GetPlaylistItems(ctx, spotify.ID(playlistID),
			spotify.Limit(spotifyPageSize),
			spotify.Offset(offset),
		)
		if err != nil {
			return nil, fmt.Errorf("error getting playlist items: %w", err)
		}

		for _, item := range page.Items {
			track := item.Track.Track
			if track == nil {
				continue
			}

			artists := make([]string, 0, len(track.Artists))
			for _, artist := range track.Artists {
				artists = append(artists, artist.Name)
			}

			tracks = append(tracks, playlist.Track{
				Name:    track.Name,
				Artists: artists,
				Album:   track.Album.Name,
				ID:      string(track.ID),
				URL:     fmt.Sprintf("https://open.spotify.com/track/%s", track.ID),
			})
		}

		if len(page.Items) < spotifyPageSize {
			break
		}
	}

	return tracks, nil
}
