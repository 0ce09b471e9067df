// Package charset decodes raw file bytes into UTF-8 text by trying a
// prioritized list of candidate encodings.
//
// Decoding is strict: a candidate is rejected when the input holds a byte
// sequence the encoding cannot represent, instead of silently substituting
// replacement characters the way the x/text decoders do by default.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Auto asks the charset detector for the encoding instead of naming one.
const Auto = "auto"

var (
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrUndecodable     = errors.New("input is not valid in this encoding")
	ErrExhausted       = errors.New("no candidate encoding could decode the input")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec is a resolved candidate encoding.
type Codec struct {
	Name string
	// enc is nil for the UTF-8 family, which is validated directly.
	enc      encoding.Encoding
	stripBOM bool
}

var builtin = map[string]Codec{
	"utf-8":        {Name: "utf-8"},
	"utf8":         {Name: "utf-8"},
	"utf-8-sig":    {Name: "utf-8-sig", stripBOM: true},
	"utf8-sig":     {Name: "utf-8-sig", stripBOM: true},
	"windows-1252": {Name: "windows-1252", enc: charmap.Windows1252},
	"cp1252":       {Name: "windows-1252", enc: charmap.Windows1252},
	"iso-8859-1":   {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	"latin-1":      {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	"latin1":       {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	"iso-8859-15":  {Name: "iso-8859-15", enc: charmap.ISO8859_15},
	"latin-9":      {Name: "iso-8859-15", enc: charmap.ISO8859_15},
	"windows-1251": {Name: "windows-1251", enc: charmap.Windows1251},
	"cp1251":       {Name: "windows-1251", enc: charmap.Windows1251},
	"macintosh":    {Name: "macintosh", enc: charmap.Macintosh},
	"mac-roman":    {Name: "macintosh", enc: charmap.Macintosh},
	"cp437":        {Name: "cp437", enc: charmap.CodePage437},
	"ibm437":       {Name: "cp437", enc: charmap.CodePage437},
	"cp850":        {Name: "cp850", enc: charmap.CodePage850},
	"ibm850":       {Name: "cp850", enc: charmap.CodePage850},
}

// Lookup resolves an encoding name. Names outside the built-in table go
// through the IANA registry.
func Lookup(name string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := builtin[key]; ok {
		return c, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return Codec{Name: key, enc: enc}, nil
}

// Decode converts raw into text, failing with ErrUndecodable when raw is
// not a faithful byte stream of this encoding.
func (c Codec) Decode(raw []byte) (string, error) {
	if c.enc == nil {
		if c.stripBOM {
			raw = bytes.TrimPrefix(raw, utf8BOM)
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%s: %w", c.Name, ErrUndecodable)
		}
		return string(raw), nil
	}

	decoded, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", c.Name, ErrUndecodable, err)
	}

	// Undefined code points decode to U+FFFD, which cannot be encoded back.
	roundTrip, err := c.enc.NewEncoder().Bytes(decoded)
	if err != nil || !bytes.Equal(roundTrip, raw) {
		return "", fmt.Errorf("%s: %w", c.Name, ErrUndecodable)
	}
	return string(decoded), nil
}

// Detect guesses the encoding of raw.
func Detect(raw []byte) (Codec, error) {
	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return Codec{}, fmt.Errorf("detecting charset: %w", err)
	}
	return Lookup(result.Charset)
}
