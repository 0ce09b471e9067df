package charset

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "UTF-8", want: "utf-8"},
		{name: " utf8 ", want: "utf-8"},
		{name: "utf-8-sig", want: "utf-8-sig"},
		{name: "CP1252", want: "windows-1252"},
		{name: "latin-1", want: "iso-8859-1"},
		{name: "ISO-8859-15", want: "iso-8859-15"},
		{name: "klingon-8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Fatalf("Lookup(%q) error = %v, want ErrUnknownEncoding", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.name, err)
			}
			if got.Name != tt.want {
				t.Errorf("Lookup(%q).Name = %q, want %q", tt.name, got.Name, tt.want)
			}
		})
	}
}

func TestCodecDecode(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		input    []byte
		want     string
		wantErr  bool
	}{
		{
			name:     "valid utf-8",
			encoding: "utf-8",
			input:    []byte("Beyonc\xc3\xa9,Halo"),
			want:     "Beyoncé,Halo",
		},
		{
			name:     "invalid utf-8",
			encoding: "utf-8",
			input:    []byte("Beyonc\xe9,Halo"),
			wantErr:  true,
		},
		{
			name:     "utf-8 keeps BOM",
			encoding: "utf-8",
			input:    []byte("\xef\xbb\xbfQueen"),
			want:     "\uFEFFQueen",
		},
		{
			name:     "utf-8-sig strips BOM",
			encoding: "utf-8-sig",
			input:    []byte("\xef\xbb\xbfQueen"),
			want:     "Queen",
		},
		{
			name:     "utf-8-sig without BOM",
			encoding: "utf-8-sig",
			input:    []byte("Queen"),
			want:     "Queen",
		},
		{
			name:     "latin1 accepts any byte",
			encoding: "iso-8859-1",
			input:    []byte("Beyonc\xe9,Halo"),
			want:     "Beyoncé,Halo",
		},
		{
			name:     "windows-1252 curly quote",
			encoding: "windows-1252",
			input:    []byte("Guns N\x92 Roses"),
			want:     "Guns N’ Roses",
		},
		{
			name:     "empty input",
			encoding: "windows-1252",
			input:    []byte{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := Lookup(tt.encoding)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tt.encoding, err)
			}
			got, err := codec.Decode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUndecodable) {
					t.Fatalf("Decode() error = %v, want ErrUndecodable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeFirst_FallsBackToSecondCandidate(t *testing.T) {
	var rejected []Attempt

	got, err := DecodeFirst([]byte("Beyonc\xe9,Halo\n"), []string{"utf-8", "iso-8859-1"}, func(a Attempt) {
		rejected = append(rejected, a)
	})
	if err != nil {
		t.Fatalf("DecodeFirst() error: %v", err)
	}
	if got.Encoding != "iso-8859-1" {
		t.Errorf("Encoding = %q, want %q", got.Encoding, "iso-8859-1")
	}
	if got.Text != "Beyoncé,Halo\n" {
		t.Errorf("Text = %q", got.Text)
	}
	if len(rejected) != 1 || rejected[0].Name != "utf-8" {
		t.Errorf("rejected = %+v, want one utf-8 attempt", rejected)
	}
	if len(got.Rejected) != 1 {
		t.Errorf("Decoded.Rejected = %+v, want one attempt", got.Rejected)
	}
}

func TestDecodeFirst_StopsAtFirstSuccess(t *testing.T) {
	calls := 0
	got, err := DecodeFirst([]byte("Queen,Bohemian Rhapsody"), []string{"utf-8", "klingon-8"}, func(Attempt) {
		calls++
	})
	if err != nil {
		t.Fatalf("DecodeFirst() error: %v", err)
	}
	if got.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", got.Encoding)
	}
	if calls != 0 {
		t.Errorf("onReject called %d times, want 0", calls)
	}
}

func TestDecodeFirst_UnknownNameIsSkipped(t *testing.T) {
	got, err := DecodeFirst([]byte("abc"), []string{"klingon-8", "utf-8"}, nil)
	if err != nil {
		t.Fatalf("DecodeFirst() error: %v", err)
	}
	if got.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", got.Encoding)
	}
}

func TestDecodeFirst_Exhausted(t *testing.T) {
	_, err := DecodeFirst([]byte("Beyonc\xe9"), []string{"utf-8", "utf-8-sig", "klingon-8"}, nil)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error %T is not *ExhaustedError", err)
	}
	if len(exhausted.Attempts) != 3 {
		t.Errorf("attempts = %d, want 3", len(exhausted.Attempts))
	}
	if !errors.Is(exhausted.Attempts[2].Err, ErrUnknownEncoding) {
		t.Errorf("third attempt error = %v, want ErrUnknownEncoding", exhausted.Attempts[2].Err)
	}
}

func TestDecodeFirst_NoCandidates(t *testing.T) {
	_, err := DecodeFirst([]byte("abc"), nil, nil)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
}

func TestDecodeFirst_Auto(t *testing.T) {
	input := "Queen,Bohemian Rhapsody\nAbba,Dancing Queen\nQueen,Under Pressure\n"

	got, err := DecodeFirst([]byte(input), []string{Auto}, nil)
	if err != nil {
		t.Fatalf("DecodeFirst(auto) error: %v", err)
	}
	if got.Text != input {
		t.Errorf("Text = %q, want %q", got.Text, input)
	}
	if got.Encoding == "" {
		t.Error("Encoding is empty")
	}
}
