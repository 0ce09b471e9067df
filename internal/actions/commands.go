package actions

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"wheelgen/internal/config"
	"wheelgen/internal/converter"
)

// Commands returns the wheelgen subcommands. Flag defaults come from cfg so
// flags override the environment.
func Commands(cfg *config.Config, logger *log.Logger) []*cli.Command {
	layoutUsage := "song sheet layout: " + strings.Join(converter.PresetNames(), ", ")

	return []*cli.Command{
		{
			Name:  "convert",
			Usage: "Convert a song sheet into the wheel JSON file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: cfg.InputPath, Usage: "song sheet to read"},
				&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: cfg.OutputPath, Usage: "wheel file to write"},
				&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Value: cfg.Layout, Usage: layoutUsage},
				&cli.StringSliceFlag{Name: "encoding", Aliases: []string{"e"}, Value: cli.NewStringSlice(cfg.Encodings...), Usage: "candidate encodings in priority order (\"auto\" detects)"},
				&cli.StringFlag{Name: "delimiter", Aliases: []string{"d"}, Value: cfg.Delimiter, Usage: "field delimiter, overrides the layout"},
				&cli.BoolFlag{Name: "skip-header", Usage: "skip the first row, overrides the layout"},
				&cli.IntFlag{Name: "min-fields", Usage: "fields a row needs to be kept, overrides the layout"},
				&cli.BoolFlag{Name: "strict", Value: cfg.Strict, Usage: "fail on short rows and duplicate keys"},
				&cli.BoolFlag{Name: "interactive", Usage: "prompt for paths and layout"},
			},
			Action: ConvertSongSheet(logger),
		},
		{
			Name:  "spin",
			Usage: "Pick a song from the wheel file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "data", Value: cfg.OutputPath, Usage: "wheel file to read"},
				&cli.StringFlag{Name: "position", Aliases: []string{"p"}, Usage: "show this position instead of a random one"},
			},
			Action: SpinWheel(),
		},
		{
			Name:  "export",
			Usage: "Export a playlist from a platform as a song sheet",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Usage: "platform to export from: spotify, youtube"},
				&cli.StringFlag{Name: "file", Value: cfg.InputPath, Usage: "song sheet to write"},
				&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Value: cfg.Layout, Usage: layoutUsage},
			},
			Action: ExportPlaylist(cfg, logger),
		},
	}
}
