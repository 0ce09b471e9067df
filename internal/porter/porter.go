package porter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"wheelgen/internal/adapters"
	"wheelgen/internal/converter"
	"wheelgen/internal/playlist"
	"wheelgen/internal/utils"
)

// Porter pulls playlists through a platform adapter and writes them as song
// sheets the converter can read.
type Porter struct {
	adapter adapters.ApiAdapter
	logger  *log.Logger
}

// NewPorter creates a new Porter using the specified adapter
func NewPorter(adapter adapters.ApiAdapter, logger *log.Logger) *Porter {
	if logger == nil {
		logger = log.Default()
	}
	return &Porter{
		adapter: adapter,
		logger:  logger.With("platform", adapter.PlatformName()),
	}
}

// NewPorterWithCredentials creates a Porter for the named platform.
func NewPorterWithCredentials(platform string, creds adapters.Credentials, logger *log.Logger) (*Porter, error) {
	adapter, err := adapters.NewApiAdapter(platform, creds, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter for platform %s: %w", platform, err)
	}
	return NewPorter(adapter, logger), nil
}

// Authenticate delegates authentication to the adapter
func (s *Porter) Authenticate(ctx context.Context) error {
	return s.adapter.Authenticate(ctx)
}

// IsAuthenticated checks if the service is authenticated
func (s *Porter) IsAuthenticated() bool {
	return s.adapter.IsAuthenticated()
}

// GetPlaylists retrieves all playlists via the adapter
func (s *Porter) GetPlaylists(ctx context.Context) ([]playlist.Playlist, error) {
	return s.adapter.GetUserPlaylists(ctx)
}

// GetPlaylistTracks retrieves all tracks in a playlist
func (s *Porter) GetPlaylistTracks(ctx context.Context, playlistID string) ([]playlist.Track, error) {
	return s.adapter.GetPlaylistItems(ctx, playlistID)
}

// ExportSongSheet writes the tracks of a playlist to path in the given
// layout and returns the number of tracks written.
func (s *Porter) ExportSongSheet(ctx context.Context, playlistID, path string, layout converter.Layout) (int, error) {
	if err := layout.Validate(); err != nil {
		return 0, err
	}

	tracks, err := s.adapter.GetPlaylistItems(ctx, playlistID)
	if err != nil {
		return 0, fmt.Errorf("failed to get playlist tracks: %w", err)
	}

	header, rows := SongSheetRows(tracks, layout)
	if err := utils.WriteDelimitedFile(path, layout.Delimiter, header, rows); err != nil {
		return 0, fmt.Errorf("error writing song sheet: %w", err)
	}

	s.logger.Info("exported song sheet", "playlist", playlistID, "file", path, "tracks", len(rows), "layout", layout.Name)
	return len(rows), nil
}

// SongSheetRows lays tracks out as rows of layout, positions counting from
// 1. The header is nil unless the layout expects one.
func SongSheetRows(tracks []playlist.Track, layout converter.Layout) ([]string, [][]string) {
	width := max(layout.MinFields, layout.Width())

	var header []string
	if layout.SkipHeader {
		header = make([]string, width)
		if layout.PositionColumn >= 0 {
			header[layout.PositionColumn] = "position"
		}
		header[layout.ArtistColumn] = "artist"
		header[layout.SongColumn] = "song"
	}

	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		row := make([]string, width)
		if layout.PositionColumn >= 0 {
			row[layout.PositionColumn] = strconv.Itoa(i + 1)
		}
		row[layout.ArtistColumn] = t.ArtistLine()
		row[layout.SongColumn] = t.Name
		rows = append(rows, row)
	}

	return header, rows
}
