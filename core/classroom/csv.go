package classroom

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSV export kinds, also the filename prefixes.
const (
	ExportAttendance = "attendance"
	ExportBehavior   = "behavior"
)

var (
	attendanceHeader = []string{"Date", "Code", "Name", "Status", "Note"}
	behaviorHeader   = []string{"Date", "Code", "Name", "Type", "Content", "Points"}
)

// ExportFilename builds the download name for a range export.
func ExportFilename(kind, startDate, endDate string) string {
	return fmt.Sprintf("%s_report_%s_%s.csv", kind, startDate, endDate)
}

type studentIndex map[string]Student

func indexStudents(students []Student) studentIndex {
	idx := make(studentIndex, len(students))
	for _, s := range students {
		idx[s.ID] = s
	}
	return idx
}

// lookup tolerates unresolvable students: the row is still emitted with
// empty code/name cells rather than failing the export.
func (idx studentIndex) lookup(id string) (code, name string) {
	s, ok := idx[id]
	if !ok {
		return "", ""
	}
	return s.Code, s.FullName
}

// AttendanceCSV renders one row per attendance record, joined with the
// student's code and name.
func AttendanceCSV(rows []Attendance, students []Student) ([]byte, error) {
	idx := indexStudents(students)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(attendanceHeader); err != nil {
		return nil, err
	}
	for _, a := range rows {
		code, name := idx.lookup(a.StudentID)
		if err := w.Write([]string{a.Date, code, name, string(a.Status), a.Note}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BehaviorCSV renders one row per behavior record, joined with the
// student's code and name.
func BehaviorCSV(rows []Behavior, students []Student) ([]byte, error) {
	idx := indexStudents(students)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(behaviorHeader); err != nil {
		return nil, err
	}
	for _, b := range rows {
		code, name := idx.lookup(b.StudentID)
		if err := w.Write([]string{b.Date, code, name, string(b.Type), b.Content, strconv.Itoa(b.Points)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
