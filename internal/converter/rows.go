package converter

import (
	"encoding/csv"
	"strings"
)

// newlines maps old Mac and Windows line ends onto \n. csv.Reader only
// splits on \n.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// rowReader reads song sheet rows. Unlike a bare csv.Reader it reports each
// blank line as an empty row so that blank lines take up a row index.
type rowReader struct {
	csv *csv.Reader

	// nextLine is the line the next row starts on if no blank lines follow.
	nextLine int

	pending     []string
	pendingLine int
}

func newRowReader(text string, layout Layout) *rowReader {
	r := csv.NewReader(strings.NewReader(newlines.Replace(text)))
	r.Comma = layout.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return &rowReader{csv: r, nextLine: 1}
}

// Read returns the next row and the line it starts on. A blank line comes
// back as a row with no fields. Blank lines after the last record are not
// reported.
func (rr *rowReader) Read() ([]string, int, error) {
	if rr.pending == nil {
		row, err := rr.csv.Read()
		if err != nil {
			return nil, 0, err
		}
		rr.pending = row
		rr.pendingLine, _ = rr.csv.FieldPos(0)
	}

	if rr.nextLine < rr.pendingLine {
		line := rr.nextLine
		rr.nextLine++
		return []string{}, line, nil
	}

	row, line := rr.pending, rr.pendingLine
	rr.pending = nil

	// A quoted last field may span lines.
	last := len(row) - 1
	lastLine, _ := rr.csv.FieldPos(last)
	rr.nextLine = lastLine + strings.Count(row[last], "\n") + 1
	return row, line, nil
}
