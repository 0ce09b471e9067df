package actions

import (
	"fmt"
	"math/rand/v2"

	"github.com/urfave/cli/v2"

	"wheelgen/internal/wheel"
)

func SpinWheel() cli.ActionFunc {
	return func(c *cli.Context) error {
		m, err := wheel.Load(c.String("data"))
		if err != nil {
			return err
		}

		var (
			key    = c.String("position")
			record wheel.Record
		)
		if key != "" {
			record, err = m.Lookup(key)
		} else {
			key, record, err = m.Pick(rand.IntN)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "%s: %s - %s\n", key, record.Artist, record.Song)
		return nil
	}
}
