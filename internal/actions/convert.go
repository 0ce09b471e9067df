package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"wheelgen/internal/charset"
	"wheelgen/internal/converter"
)

func ConvertSongSheet(logger *log.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		input := c.String("input")
		output := c.String("output")
		layoutName := c.String("layout")
		interactive := c.Bool("interactive")

		if interactive {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Song sheet to convert").Value(&input),
				huh.NewInput().Title("Wheel file to write").Value(&output),
				huh.NewSelect[string]().
					Title("Layout of the song sheet").
					Options(layoutOptions()...).
					Value(&layoutName),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		layout, err := layoutFromFlags(c, layoutName)
		if err != nil {
			return err
		}

		opts := converter.Options{
			InputPath:  input,
			OutputPath: output,
			Encodings:  c.StringSlice("encoding"),
			Layout:     layout,
			Strict:     c.Bool("strict"),
			Logger:     logger,
		}

		var res converter.Result
		run := func(ctx context.Context) error {
			var err error
			res, err = converter.Convert(ctx, opts)
			return err
		}

		if interactive {
			err = spinner.New().Title("Converting...").Context(c.Context).ActionWithErr(run).Run()
		} else {
			err = run(c.Context)
		}
		if errors.Is(err, charset.ErrExhausted) {
			return fmt.Errorf("conversion failed, %s was not written: %w", output, err)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "Conversion complete: %d songs read as %s. Check %s for the result.\n", res.Records, res.Encoding, output)
		return nil
	}
}

// layoutFromFlags starts from the named preset and applies the delimiter,
// header and field count overrides that were given.
func layoutFromFlags(c *cli.Context, name string) (converter.Layout, error) {
	layout, err := converter.Preset(name)
	if err != nil {
		return converter.Layout{}, err
	}

	if d := c.String("delimiter"); d != "" {
		if layout.Delimiter, err = converter.ParseDelimiter(d); err != nil {
			return converter.Layout{}, err
		}
	}
	if c.IsSet("skip-header") {
		layout.SkipHeader = c.Bool("skip-header")
	}
	if c.IsSet("min-fields") {
		layout.MinFields = c.Int("min-fields")
	}

	return layout, layout.Validate()
}

func layoutOptions() []huh.Option[string] {
	names := converter.PresetNames()
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}
	return options
}
