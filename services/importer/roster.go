// Package importer loads student rosters from xlsx workbooks exported by
// the school office.
package importer

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/tnthao/solienlac/core/classroom"
)

// Expected column order on the first sheet, header row included:
// code, fullName, gender, dob, classId, address, status.
const minColumns = 4

// Result sums up one import run.
type Result struct {
	Added   int
	Skipped []string // codes skipped because they already exist
}

// ImportRoster reads the workbook's first sheet and adds one student per
// row. Rows whose code already exists are skipped, not updated; a row too
// short to carry the required columns fails the whole import.
func ImportRoster(ctx context.Context, provider classroom.DataProvider, r io.Reader) (Result, error) {
	var res Result

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return res, errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return res, errors.New("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return res, errors.Wrap(err, "reading rows")
	}

	for i, row := range rows {
		if i == 0 { // header
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) < minColumns {
			return res, errors.Errorf("row %d: expected at least %d columns, got %d", i+1, minColumns, len(row))
		}
		st := classroom.Student{
			Code:     strings.TrimSpace(row[0]),
			FullName: strings.TrimSpace(row[1]),
			Gender:   strings.ToLower(strings.TrimSpace(row[2])),
			DOB:      strings.TrimSpace(row[3]),
			Status:   classroom.StudentActive,
		}
		if len(row) > 4 {
			st.ClassID = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			st.Address = strings.TrimSpace(row[5])
		}
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			st.Status = strings.ToLower(strings.TrimSpace(row[6]))
		}
		if st.Code == "" || st.FullName == "" {
			return res, errors.Errorf("row %d: code and fullName are required", i+1)
		}

		existing, err := provider.GetStudentByCode(ctx, st.Code)
		if err != nil {
			return res, err
		}
		if existing != nil {
			res.Skipped = append(res.Skipped, st.Code)
			continue
		}
		if _, err = provider.AddStudent(ctx, st); err != nil {
			return res, err
		}
		res.Added++
	}
	return res, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
