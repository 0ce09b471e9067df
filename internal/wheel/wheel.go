// Package wheel holds the data consumed by the spinning-wheel picker: an
// ordered mapping from a position key to the song on that position.
package wheel

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/tidwall/pretty"
)

var (
	ErrNotFound = errors.New("position not on the wheel")
	ErrEmpty    = errors.New("wheel has no entries")
)

// Record is a single wheel entry.
type Record struct {
	Artist string `json:"artist"`
	Song   string `json:"song"`
}

// Mapping is an insertion-ordered collection of records keyed by position.
// The zero value is ready to use.
type Mapping struct {
	keys    []string
	records map[string]Record
}

func NewMapping() *Mapping {
	return &Mapping{records: make(map[string]Record)}
}

// Set stores r under key. An existing key keeps its place in the order and
// has its record replaced; replaced reports whether that happened.
func (m *Mapping) Set(key string, r Record) (replaced bool) {
	if m.records == nil {
		m.records = make(map[string]Record)
	}
	if _, ok := m.records[key]; !ok {
		m.keys = append(m.keys, key)
	} else {
		replaced = true
	}
	m.records[key] = r
	return replaced
}

func (m *Mapping) Get(key string) (Record, bool) {
	r, ok := m.records[key]
	return r, ok
}

// Lookup is Get with an ErrNotFound error for missing keys.
func (m *Mapping) Lookup(key string) (Record, error) {
	r, ok := m.records[key]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return r, nil
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	return slices.Clone(m.keys)
}

func (m *Mapping) Len() int {
	return len(m.keys)
}

// Pick returns a random entry. intn must return a value in [0, n).
func (m *Mapping) Pick(intn func(n int) int) (string, Record, error) {
	if m.Len() == 0 {
		return "", Record{}, ErrEmpty
	}
	key := m.keys[intn(len(m.keys))]
	return key, m.records[key], nil
}

// MarshalJSON writes the mapping as a compact JSON object in key order.
// HTML characters and the U+2028/U+2029 separators are not escaped.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var (
		out     bytes.Buffer
		scratch bytes.Buffer
	)
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)

	write := func(v any) error {
		scratch.Reset()
		if err := enc.Encode(v); err != nil {
			return err
		}
		out.Write(literalSeparators(bytes.TrimRight(scratch.Bytes(), "\n")))
		return nil
	}

	out.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			out.WriteByte(',')
		}
		if err := write(key); err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", key, err)
		}
		out.WriteByte(':')
		if err := write(m.records[key]); err != nil {
			return nil, fmt.Errorf("encoding record %q: %w", key, err)
		}
	}
	out.WriteByte('}')

	return out.Bytes(), nil
}

// literalSeparators turns the \u2028 and \u2029 escapes the encoder always
// emits back into the raw characters. Other escapes are copied as they are.
func literalSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 == len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && string(b[i+1:i+5]) == "u202" {
			switch b[i+5] {
			case '8':
				out = utf8.AppendRune(out, '\u2028')
				i += 5
				continue
			case '9':
				out = utf8.AppendRune(out, '\u2029')
				i += 5
				continue
			}
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// UnmarshalJSON replaces the mapping with the object in data. JSON objects
// carry no order, so keys are ordered numerically when all of them are
// integers and lexically otherwise.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var raw map[string]Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sortKeys(keys)

	m.keys = keys
	m.records = make(map[string]Record, len(raw))
	for k, r := range raw {
		m.records[k] = r
	}
	return nil
}

// Encode returns the wheel file form: two-space indented, key order kept,
// trailing newline.
func (m *Mapping) Encode() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(compact, &pretty.Options{
		Width:  80,
		Indent: "  ",
	}), nil
}

// Load reads a wheel file written by Encode.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wheel file: %w", err)
	}

	m := NewMapping()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing wheel file %s: %w", path, err)
	}
	return m, nil
}

func sortKeys(keys []string) {
	nums := make(map[string]int, len(keys))
	for _, k := range keys {
		n, err := strconv.Atoi(k)
		if err != nil {
			slices.Sort(keys)
			return
		}
		nums[k] = n
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(nums[a], nums[b]), cmp.Compare(a, b))
	})
}
