package models

import (
	"fmt"
	"strconv"
)

// Grade represents a letter grade on the fixed 4.0 scale.
type Grade string

const (
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// GradePoints maps each letter grade to its point value.
var GradePoints = map[Grade]float64{
	GradeA:      4.00,
	GradeAMinus: 3.67,
	GradeBPlus:  3.33,
	GradeB:      3.00,
	GradeBMinus: 2.67,
	GradeCPlus:  2.33,
	GradeC:      2.00,
	GradeCMinus: 1.67,
	GradeD:      1.00,
	GradeF:      0.00,
}

// CreditRange bounds the credit count of a single class.
const (
	MinCredits = 1
	MaxCredits = 6
)

// ClassEntry is one recorded course. IDs are minted once at creation and
// never reassigned or reused. Semester is empty only on rows saved before
// the semester field became required.
type ClassEntry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Grade    Grade  `json:"grade"`
	Credits  int    `json:"credits"`
	Semester string `json:"semester,omitempty"`
}

// Validate checks the persisted-entry invariants.
func (e ClassEntry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("class name required")
	}
	if _, ok := GradePoints[e.Grade]; !ok {
		return fmt.Errorf("unknown grade %q", e.Grade)
	}
	if e.Credits < MinCredits || e.Credits > MaxCredits {
		return fmt.Errorf("credits %d outside [%d,%d]", e.Credits, MinCredits, MaxCredits)
	}
	return nil
}

// Roster is the ordered list of class entries. Order is insertion order and
// is persisted as a whole on every mutation.
type Roster []ClassEntry

// IndexOf returns the position of the entry with the given id, or -1.
func (r Roster) IndexOf(id int64) int {
	for i := range r {
		if r[i].ID == id {
			return i
		}
	}
	return -1
}

// GPA derives the credit-weighted grade point average. Only entries carrying
// both a grade and a nonzero credit count participate; everything else is
// skipped without being removed from the roster. Empty roster and zero
// filtered credits both yield the literal "0".
func (r Roster) GPA() string {
	if len(r) == 0 {
		return "0"
	}
	var totalPoints float64
	var totalCredits float64
	for _, e := range r {
		if e.Grade == "" || e.Credits == 0 {
			continue
		}
		totalPoints += GradePoints[e.Grade] * float64(e.Credits)
		totalCredits += float64(e.Credits)
	}
	if totalCredits == 0 {
		return "0"
	}
	return FormatGPA(totalPoints / totalCredits)
}

// TotalCredits sums credits over every entry, including those the GPA
// computation skips. The asymmetry is deliberate.
func (r Roster) TotalCredits() int {
	total := 0
	for _, e := range r {
		total += e.Credits
	}
	return total
}

// FormatGPA renders a grade point average with the fewest decimal places
// (0 to 3) that reproduce the value exactly; if even three places round,
// three places are kept.
func FormatGPA(gpa float64) string {
	for places := 0; places <= 3; places++ {
		s := strconv.FormatFloat(gpa, 'f', places, 64)
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed == gpa {
			return s
		}
	}
	return strconv.FormatFloat(gpa, 'f', 3, 64)
}
