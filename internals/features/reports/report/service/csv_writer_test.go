package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestWriteCSVStartsWithBOM(t *testing.T) {
	data, err := WriteCSV([]string{"الاسم"}, nil)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("output does not start with UTF-8 BOM: % x", data[:3])
	}
}

func TestWriteCSVRows(t *testing.T) {
	data, err := WriteCSV(
		[]string{"الاسم", "النقاط", "ملاحظة"},
		[][]any{
			{"أحمد", 27.0, "صيام، قيام"},
			{"سالم", 30.5, ""},
		},
	)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1][1] != "27" {
		t.Errorf("whole float should drop the decimal, got %q", records[1][1])
	}
	if records[2][1] != "30.5" {
		t.Errorf("fractional float kept one decimal, got %q", records[2][1])
	}
	if records[1][2] != "صيام، قيام" {
		t.Errorf("arabic cell mangled: %q", records[1][2])
	}
}

func TestWriteCSVShortRow(t *testing.T) {
	data, err := WriteCSV([]string{"a", "b", "c"}, [][]any{{"x"}})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(string(data), "x,,") {
		t.Errorf("short row should pad to the header width: %q", string(data))
	}
}
