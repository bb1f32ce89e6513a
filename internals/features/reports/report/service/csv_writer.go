package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM keeps Excel from mangling Arabic text in a plain CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV renders a header and rows into a BOM-prefixed CSV document.
func WriteCSV(header []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// Trim trailing zeros so 7.0 exports as 7 and 7.5 stays 7.5.
		s := fmt.Sprintf("%.1f", x)
		if s[len(s)-1] == '0' {
			return s[:len(s)-2]
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}
