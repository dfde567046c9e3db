package ponto

import (
	"strings"
	"time"

	"github.com/mcoot/ponto/internal/model"
)

// LastPunch returns the employee's most recent punch. Punches whose time
// could not be read are skipped.
func LastPunch(employee *model.Employee) (time.Time, bool) {
	if employee == nil {
		return time.Time{}, false
	}
	var last time.Time
	for _, p := range employee.Pontos {
		if p.Valid() && p.Time.After(last) {
			last = p.Time
		}
	}
	return last, !last.IsZero()
}

// FilterByName returns employees whose name contains query, ignoring case.
// An empty query matches everyone.
func FilterByName(employees []model.Employee, query string) []model.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return employees
	}

	var matched []model.Employee
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Nome), query) {
			matched = append(matched, e)
		}
	}
	return matched
}
