package adapters

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"wheelgen/internal/playlist"
)

const youtubePageSize = 50

// YouTubeAdapter adapts the YouTube API to our common adapter interface
type YouTubeAdapter struct {
	BaseAdapter
	service *youtube.Service
	config  *oauth2.Config
}

// NewYouTubeAdapter creates a new YouTubeAdapter
func NewYouTubeAdapter(creds Credentials, logger *log.Logger) (*YouTubeAdapter, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("youtube client ID and secret must be set (YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET)")
	}
	base, err := NewBaseAdapter("YouTube", logger)
	if err != nil {
		return nil, err
	}
	return &YouTubeAdapter{
		BaseAdapter: base,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

// Authenticate runs the browser login and builds the YouTube service.
func (a *YouTubeAdapter) Authenticate(ctx context.Context) error {
	authURL := a.config.AuthCodeURL(a.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	err := a.awaitCallback(ctx, authURL, func(r *http.Request) error {
		token, err := a.config.Exchange(r.Context(), r.FormValue("code"))
		if err != nil {
			return fmt.Errorf("exchanging code for token: %w", err)
		}
		client := a.config.Client(context.Background(), token)
		service, err := youtube.NewService(context.Background(), option.WithHTTPClient(client))
		if err != nil {
			return fmt.Errorf("creating YouTube client: %w", err)
		}
		a.service = service
		return nil
	})
	if err != nil {
		return err
	}

	a.SetAuthenticated(true)
	a.logger.Info("logged in")
	return nil
}

// GetUserPlaylists retrieves all playlists for the authenticated user
func (a *YouTubeAdapter) GetUserPlaylists(ctx context.Context) ([]playlist.Playlist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var playlists []playlist.Playlist
	var nextPageToken string

	for {
		call := a.service.Playlists.List([]string{"snippet", "contentDetails"}).
			Mine(true).
			MaxResults(youtubePageSize).
			Context(ctx)
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching playlists: %w", err)
		}

		for _, item := range response.Items {
			published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			playlists = append(playlists, playlist.Playlist{
				ID:          item.Id,
				Name:        item.Snippet.Title,
				Description: item.Snippet.Description,
				TrackCount:  int(item.ContentDetails.ItemCount),
				CreatedAt:   published,
			})
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" {
			break
		}
	}

	return playlists, nil
}

// GetPlaylistItems retrieves the videos of a playlist as tracks. The
// channel name stands in for the artist, minus the " - Topic" suffix of
// auto-generated music channels.
func (a *YouTubeAdapter) GetPlaylistItems(ctx context.Context, playlistID string) ([]playlist.Track, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var tracks []playlist.Track
	var nextPageToken string

	for {
		call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(youtubePageSize).
			Context(ctx)
		if nextPageToken != "" {
			call = call.PageToken(nextPageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching playlist items: %w", err)
		}

		for _, item := range response.Items {
			videoID := item.ContentDetails.VideoId
			tracks = append(tracks, playlist.Track{
				Name:    item.Snippet.Title,
				Artists: []string{strings.TrimSuffix(item.Snippet.VideoOwnerChannelTitle, " - Topic")},
				ID:      videoID,
				URL:     fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
			})
		}

		nextPageToken = response.NextPageToken
		if nextPageToken == "" {
			break
		}
	}

	return tracks, nil
}
