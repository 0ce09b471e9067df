package utils

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteDelimitedFile writes header (when non-empty) and rows to filePath
// with sep between fields, replacing any existing file.
func WriteDelimitedFile(filePath string, sep rune, header []string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = sep

	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}

	return file.Close()
}
