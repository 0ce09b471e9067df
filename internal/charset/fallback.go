package charset

import (
	"fmt"
	"strings"
)

// Attempt records one candidate that was tried and rejected.
type Attempt struct {
	Name string
	Err  error
}

// ExhaustedError is returned by DecodeFirst when every candidate failed.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrExhausted.Error() + ": no candidates configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", ErrExhausted, strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Decoded is the outcome of a successful DecodeFirst.
type Decoded struct {
	Text     string
	Encoding string
	// Rejected lists the candidates tried before the one that worked.
	Rejected []Attempt
}

// DecodeFirst tries each candidate in order and returns the first
// successful decoding. onReject, when non-nil, is called for every
// candidate that fails.
func DecodeFirst(raw []byte, candidates []string, onReject func(Attempt)) (Decoded, error) {
	var rejected []Attempt

	for _, name := range candidates {
		text, used, err := decodeWith(raw, name)
		if err == nil {
			return Decoded{Text: text, Encoding: used, Rejected: rejected}, nil
		}

		a := Attempt{Name: name, Err: err}
		rejected = append(rejected, a)
		if onReject != nil {
			onReject(a)
		}
	}

	return Decoded{}, &ExhaustedError{Attempts: rejected}
}

func decodeWith(raw []byte, name string) (string, string, error) {
	var (
		codec Codec
		err   error
	)
	if strings.EqualFold(strings.TrimSpace(name), Auto) {
		codec, err = Detect(raw)
	} else {
		codec, err = Lookup(name)
	}
	if err != nil {
		return "", "", err
	}

	text, err := codec.Decode(raw)
	if err != nil {
		return "", "", err
	}
	return text, codec.Name, nil
}
