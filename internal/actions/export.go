package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"wheelgen/internal/adapters"
	"wheelgen/internal/config"
	"wheelgen/internal/converter"
	"wheelgen/internal/playlist"
	"wheelgen/internal/porter"
)

func ExportPlaylist(cfg *config.Config, logger *log.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := c.Context
		platform := strings.ToLower(c.String("from"))
		destFile := c.String("file")

		layout, err := converter.Preset(c.String("layout"))
		if err != nil {
			return err
		}

		if platform == "" {
			err := huh.NewSelect[string]().
				Title("Choose the platform to export from").
				Options(
					huh.NewOption("Spotify", string(adapters.SpotifyPlatform)),
					huh.NewOption("YouTube Music", string(adapters.YoutubePlatform)),
				).
				Value(&platform).
				Run()
			if err != nil {
				return err
			}
		}

		p, err := porter.NewPorterWithCredentials(platform, credentialsFor(cfg, platform), logger)
		if err != nil {
			return err
		}
		if err := p.Authenticate(ctx); err != nil {
			return err
		}

		playlists, err := p.GetPlaylists(ctx)
		if err != nil {
			return err
		}
		if len(playlists) == 0 {
			return fmt.Errorf("no playlists found in your %s account", platform)
		}

		var playlistID string
		err = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Height(10).
				Title("Choose a playlist to export").
				Options(getPlaylistOptions(playlists)...).
				Value(&playlistID),
			huh.NewInput().
				Title("Enter the file path to save the song sheet").
				Value(&destFile),
		)).Run()
		if err != nil {
			return err
		}

		var exported int
		download := func(ctx context.Context) error {
			n, err := p.ExportSongSheet(ctx, playlistID, destFile, layout)
			exported = n
			return err
		}
		if err := spinner.New().Title("Exporting...").Context(ctx).ActionWithErr(download).Run(); err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "Exported %d songs to %s. Run `wheelgen convert --input %s --layout %s` to build the wheel.\n",
			exported, destFile, destFile, layout.Name)
		return nil
	}
}

func credentialsFor(cfg *config.Config, platform string) adapters.Credentials {
	switch adapters.PlatformType(platform) {
	case adapters.SpotifyPlatform:
		return adapters.Credentials{ClientID: cfg.SpotifyID, ClientSecret: cfg.SpotifySecret}
	case adapters.YoutubePlatform:
		return adapters.Credentials{ClientID: cfg.YouTubeID, ClientSecret: cfg.YouTubeSecret}
	default:
		return adapters.Credentials{}
	}
}

func getPlaylistOptions(p []playlist.Playlist) []huh.Option[string] {
	playlistOptions := make([]huh.Option[string], len(p))
	for i, pl := range p {
		playlistOptions[i] = huh.NewOption(fmt.Sprintf("%s (%d tracks)", pl.Name, pl.TrackCount), pl.ID)
	}
	return playlistOptions
}
