package engine

import (
	"github.com/khatapp/khata/internal/model"
)

// SetAttendance wholesale-replaces the attendance collection. Callers
// merge individual day edits into the full list first (see
// ToggleAttendance), matching how the collection is persisted.
func (e *Engine) SetAttendance(doc model.Document, attendance []model.MonthlyAttendance) (model.Document, error) {
	for _, a := range attendance {
		if err := model.Validate("attendance", a); err != nil {
			return doc, err
		}
		if doc.ContactIndex(a.EmployeeID) < 0 {
			return doc, NewNotFoundError("contact", a.EmployeeID)
		}
	}

	next := doc.Clone()
	next.Attendance = make([]model.MonthlyAttendance, len(attendance))
	for i, a := range attendance {
		records := make(map[int]bool, len(a.Records))
		for day, present := range a.Records {
			records[day] = present
		}
		a.Records = records
		next.Attendance[i] = a
	}
	return next, nil
}

// ToggleAttendance flips one day for one employee-month and returns the
// merged attendance list ready for SetAttendance. A missing day defaults
// to absent, so the first toggle marks it present. The month entry is
// created on first use.
func ToggleAttendance(attendance []model.MonthlyAttendance, employeeID string, year, month, day int) []model.MonthlyAttendance {
	out := make([]model.MonthlyAttendance, len(attendance))
	found := false
	for i, a := range attendance {
		if a.EmployeeID == employeeID && a.Year == year && a.Month == month {
			records := make(map[int]bool, len(a.Records)+1)
			for d, present := range a.Records {
				records[d] = present
			}
			records[day] = !records[day]
			a.Records = records
			found = true
		}
		out[i] = a
	}
	if !found {
		out = append(out, model.MonthlyAttendance{
			EmployeeID: employeeID,
			Year:       year,
			Month:      month,
			Records:    map[int]bool{day: true},
		})
	}
	return out
}
