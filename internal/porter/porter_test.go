package porter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"wheelgen/internal/converter"
	"wheelgen/internal/playlist"
	"wheelgen/internal/wheel"
)

type fakeAdapter struct {
	authenticated bool
	playlists     []playlist.Playlist
	tracks        map[string][]playlist.Track
	err           error
}

func (f *fakeAdapter) Authenticate(context.Context) error {
	f.authenticated = true
	return nil
}

func (f *fakeAdapter) IsAuthenticated() bool { return f.authenticated }

func (f *fakeAdapter) PlatformName() string { return "Fake" }

func (f *fakeAdapter) GetUserPlaylists(context.Context) ([]playlist.Playlist, error) {
	return f.playlists, f.err
}

func (f *fakeAdapter) GetPlaylistItems(_ context.Context, id string) ([]playlist.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks[id], nil
}

func newFakePorter(f *fakeAdapter) *Porter {
	return NewPorter(f, log.New(io.Discard))
}

var grunneger = []playlist.Track{
	{Name: "Bohemian Rhapsody", Artists: []string{"Queen"}},
	{Name: "Under Pressure", Artists: []string{"Queen", "David Bowie"}},
	{Name: "Jóga", Artists: []string{"Björk"}},
}

func mustPreset(t *testing.T, name string) converter.Layout {
	t.Helper()
	l, err := converter.Preset(name)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestSongSheetRows(t *testing.T) {
	tests := []struct {
		layout     string
		wantHeader []string
		wantFirst  []string
	}{
		{"classic", nil, []string{"Queen", "Bohemian Rhapsody"}},
		{"numbered", nil, []string{"1", "Queen", "Bohemian Rhapsody"}},
		{"positional", []string{"position", "artist", "song"}, []string{"1", "Queen", "Bohemian Rhapsody"}},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			header, rows := SongSheetRows(grunneger, mustPreset(t, tt.layout))
			if !reflect.DeepEqual(header, tt.wantHeader) {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if len(rows) != len(grunneger) {
				t.Fatalf("rows = %d, want %d", len(rows), len(grunneger))
			}
			if !reflect.DeepEqual(rows[0], tt.wantFirst) {
				t.Errorf("rows[0] = %q, want %q", rows[0], tt.wantFirst)
			}
		})
	}
}

func TestExportSongSheet_ConvertsBack(t *testing.T) {
	for _, name := range converter.PresetNames() {
		t.Run(name, func(t *testing.T) {
			layout := mustPreset(t, name)
			dir := t.TempDir()
			sheet := filepath.Join(dir, "liedjes.csv")
			out := filepath.Join(dir, "wheelData.json")

			p := newFakePorter(&fakeAdapter{tracks: map[string][]playlist.Track{"g1000": grunneger}})
			n, err := p.ExportSongSheet(context.Background(), "g1000", sheet, layout)
			if err != nil {
				t.Fatalf("ExportSongSheet() error: %v", err)
			}
			if n != len(grunneger) {
				t.Errorf("exported %d tracks, want %d", n, len(grunneger))
			}

			_, err = converter.Convert(context.Background(), converter.Options{
				InputPath:  sheet,
				OutputPath: out,
				Encodings:  []string{"utf-8"},
				Layout:     layout,
				Logger:     log.New(io.Discard),
			})
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}

			m, err := wheel.Load(out)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := m.Keys(), []string{"1", "2", "3"}; !reflect.DeepEqual(got, want) {
				t.Errorf("Keys() = %v, want %v", got, want)
			}
			if r, _ := m.Get("2"); r != (wheel.Record{Artist: "Queen, David Bowie", Song: "Under Pressure"}) {
				t.Errorf("record 2 = %+v", r)
			}
			if r, _ := m.Get("3"); r.Artist != "Björk" {
				t.Errorf("record 3 = %+v", r)
			}
		})
	}
}

func TestExportSongSheet_AdapterError(t *testing.T) {
	boom := errors.New("quota exceeded")
	p := newFakePorter(&fakeAdapter{err: boom})
	path := filepath.Join(t.TempDir(), "liedjes.csv")

	if _, err := p.ExportSongSheet(context.Background(), "g1000", path, mustPreset(t, "positional")); !errors.Is(err, boom) {
		t.Errorf("ExportSongSheet() error = %v, want %v", err, boom)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("song sheet written despite adapter error")
	}
}

func TestPorter_Delegates(t *testing.T) {
	f := &fakeAdapter{playlists: []playlist.Playlist{{ID: "g1000", Name: "Grunneger 1000"}}}
	p := newFakePorter(f)

	if err := p.Authenticate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !p.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after Authenticate")
	}
	got, err := p.GetPlaylists(context.Background())
	if err != nil || len(got) != 1 || got[0].Name != "Grunneger 1000" {
		t.Errorf("GetPlaylists() = %+v, %v", got, err)
	}
}
