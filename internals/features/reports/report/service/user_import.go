package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportedUser is one parsed membership row, normalized but not yet
// persisted.
type ImportedUser struct {
	Row      int
	FullName string
	Gender   string
	Age      int
	Phone    string
	Email    string
	Country  string
	Referral string
}

// RowError reports one rejected spreadsheet row with an Arabic reason.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// parseGender accepts both the Arabic export labels and the raw enum.
func parseGender(s string) (string, bool) {
	switch strings.TrimSpace(s) {
	case "male", "ذكر":
		return "male", true
	case "female", "أنثى":
		return "female", true
	}
	return "", false
}

// ReadUserImport parses a membership sheet laid out per
// ImportTemplateHeader. Invalid rows are collected, not fatal; duplicated
// emails within the file keep the first occurrence.
func ReadUserImport(r io.Reader) ([]ImportedUser, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("ملف غير صالح: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("الملف لا يحتوي على أي ورقة")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("الملف لا يحتوي على بيانات")
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var (
		users    []ImportedUser
		rowErrs  []RowError
		seenMail = map[string]bool{}
	)
	for i, row := range rows[1:] {
		rowNum := i + 2

		u := ImportedUser{
			Row:      rowNum,
			FullName: cell(row, 0),
			Phone:    cell(row, 3),
			Email:    strings.ToLower(cell(row, 4)),
			Country:  cell(row, 5),
			Referral: cell(row, 6),
		}
		if u.FullName == "" && u.Email == "" {
			continue // blank row
		}
		if u.FullName == "" {
			rowErrs = append(rowErrs, RowError{rowNum, "الاسم الكامل مطلوب"})
			continue
		}
		if u.Email == "" || !strings.Contains(u.Email, "@") {
			rowErrs = append(rowErrs, RowError{rowNum, "البريد الإلكتروني غير صالح"})
			continue
		}
		if seenMail[u.Email] {
			rowErrs = append(rowErrs, RowError{rowNum, "بريد مكرر داخل الملف"})
			continue
		}

		gender, ok := parseGender(cell(row, 1))
		if !ok {
			rowErrs = append(rowErrs, RowError{rowNum, "الجنس يجب أن يكون ذكر أو أنثى"})
			continue
		}
		u.Gender = gender

		if raw := cell(row, 2); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil || age < 0 || age > 120 {
				rowErrs = append(rowErrs, RowError{rowNum, "العمر غير صالح"})
				continue
			}
			u.Age = age
		}

		seenMail[u.Email] = true
		users = append(users, u)
	}

	return users, rowErrs, nil
}
