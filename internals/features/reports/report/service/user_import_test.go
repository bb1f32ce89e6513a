package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportSheet(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, h := range ImportTemplateHeader() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	for r, row := range rows {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadUserImport(t *testing.T) {
	r := buildImportSheet(t, [][]any{
		{"أحمد محمد", "ذكر", 25, "0501111111", "ahmad@example.com", "السعودية", "صديق"},
		{"فاطمة علي", "female", 30, "0502222222", "Fatima@Example.com", "مصر", ""},
	})

	users, rowErrs, err := ReadUserImport(r)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, users, 2)

	assert.Equal(t, "أحمد محمد", users[0].FullName)
	assert.Equal(t, "male", users[0].Gender)
	assert.Equal(t, 25, users[0].Age)
	assert.Equal(t, "ahmad@example.com", users[0].Email)

	assert.Equal(t, "female", users[1].Gender, "raw enum accepted alongside arabic label")
	assert.Equal(t, "fatima@example.com", users[1].Email, "email lowercased")
}

func TestReadUserImportBadRows(t *testing.T) {
	r := buildImportSheet(t, [][]any{
		{"", "ذكر", 25, "050", "noname@example.com", "السعودية", ""},
		{"بدون بريد", "ذكر", 25, "050", "not-an-email", "السعودية", ""},
		{"جنس خاطئ", "unknown", 25, "050", "g@example.com", "السعودية", ""},
		{"عمر خاطئ", "أنثى", "abc", "050", "a@example.com", "السعودية", ""},
		{"سليم", "ذكر", 40, "050", "ok@example.com", "السعودية", ""},
		{"مكرر", "ذكر", 41, "050", "ok@example.com", "السعودية", ""},
	})

	users, rowErrs, err := ReadUserImport(r)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "سليم", users[0].FullName)
	assert.Equal(t, 6, users[0].Row)

	require.Len(t, rowErrs, 5)
	for i, reason := range []string{
		"الاسم الكامل مطلوب",
		"البريد الإلكتروني غير صالح",
		"الجنس يجب أن يكون ذكر أو أنثى",
		"العمر غير صالح",
		"بريد مكرر داخل الملف",
	} {
		assert.Equal(t, reason, rowErrs[i].Reason, fmt.Sprintf("row error %d", i))
	}
}

func TestReadUserImportSkipsBlankRows(t *testing.T) {
	r := buildImportSheet(t, [][]any{
		{"أحمد", "ذكر", 25, "050", "a@example.com", "السعودية", ""},
		{"", "", "", "", "", "", ""},
		{"سالم", "ذكر", 26, "051", "b@example.com", "السعودية", ""},
	})

	users, rowErrs, err := ReadUserImport(r)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, users, 2)
}

func TestReadUserImportRejectsGarbage(t *testing.T) {
	_, _, err := ReadUserImport(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestReadUserImportEmptySheet(t *testing.T) {
	r := buildImportSheet(t, nil)
	_, _, err := ReadUserImport(r)
	assert.Error(t, err)
}
