package converter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

var ErrInvalidLayout = errors.New("invalid layout")

// NoColumn marks a column the layout does not have.
const NoColumn = -1

// Layout describes how one song sheet variant arranges its rows.
type Layout struct {
	Name       string
	Delimiter  rune
	SkipHeader bool
	// MinFields is the least number of fields a row needs to become a record.
	MinFields      int
	PositionColumn int
	ArtistColumn   int
	SongColumn     int
	// KeyFromPosition keys records by the position column instead of by
	// their row index.
	KeyFromPosition bool
}

var presets = map[string]Layout{
	"classic": {
		Name:           "classic",
		Delimiter:      ',',
		MinFields:      2,
		PositionColumn: NoColumn,
		ArtistColumn:   0,
		SongColumn:     1,
	},
	"numbered": {
		Name:           "numbered",
		Delimiter:      ',',
		MinFields:      3,
		PositionColumn: 0,
		ArtistColumn:   1,
		SongColumn:     2,
	},
	"positional": {
		Name:            "positional",
		Delimiter:       ';',
		SkipHeader:      true,
		MinFields:       3,
		PositionColumn:  0,
		ArtistColumn:    1,
		SongColumn:      2,
		KeyFromPosition: true,
	},
}

// Preset returns the named layout.
func Preset(name string) (Layout, error) {
	l, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Layout{}, fmt.Errorf("%w: unknown preset %q (have %s)", ErrInvalidLayout, name, strings.Join(PresetNames(), ", "))
	}
	return l, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseDelimiter accepts a single character or one of the names "tab",
// "comma", "semicolon", "pipe".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q must be a single character", ErrInvalidLayout, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Width is the number of columns a row needs to carry every field.
func (l Layout) Width() int {
	return max(l.PositionColumn, l.ArtistColumn, l.SongColumn) + 1
}

func (l Layout) Validate() error {
	switch l.Delimiter {
	case 0, '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("%w: delimiter %q", ErrInvalidLayout, l.Delimiter)
	}
	if l.ArtistColumn < 0 || l.SongColumn < 0 {
		return fmt.Errorf("%w: artist and song columns are required", ErrInvalidLayout)
	}
	if l.KeyFromPosition && l.PositionColumn < 0 {
		return fmt.Errorf("%w: position keys need a position column", ErrInvalidLayout)
	}
	if l.MinFields < l.Width() {
		return fmt.Errorf("%w: min fields %d is below the %d columns in use", ErrInvalidLayout, l.MinFields, l.Width())
	}
	return nil
}
