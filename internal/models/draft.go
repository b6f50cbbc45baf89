package models

// DraftMode tracks which flow the draft form is in. The machine only moves
// Closed -> Adding -> Closed or Closed -> Editing -> Closed; open states
// never nest or overlap.
type DraftMode string

const (
	DraftClosed  DraftMode = "CLOSED"
	DraftAdding  DraftMode = "ADDING"
	DraftEditing DraftMode = "EDITING"
)

// Draft holds the in-progress form state for the entry being added or
// edited. Term and Year stay separate while the draft is open and are only
// combined into the stored semester at submit time.
type Draft struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Grade   Grade  `json:"grade"`
	Credits int    `json:"credits"`
	Term    string `json:"term"`
	Year    string `json:"year"`
}

// IsComplete reports whether every required field is present. Submission is
// a silent no-op until it is.
func (d Draft) IsComplete() bool {
	return d.Name != "" && d.Grade != "" && d.Credits != 0 && d.Term != "" && d.Year != ""
}

// Entry materialises the draft into a class entry, encoding the semester.
// The caller supplies the id (fresh for adds, preserved for edits).
func (d Draft) Entry(id int64) ClassEntry {
	return ClassEntry{
		ID:       id,
		Name:     d.Name,
		Grade:    d.Grade,
		Credits:  d.Credits,
		Semester: EncodeSemester(d.Term, d.Year),
	}
}

// DraftFromEntry copies an entry's fields into a draft for editing,
// splitting the stored semester back into term and year.
func DraftFromEntry(e ClassEntry) Draft {
	term, year := DecodeSemester(e.Semester)
	return Draft{
		ID:      e.ID,
		Name:    e.Name,
		Grade:   e.Grade,
		Credits: e.Credits,
		Term:    term,
		Year:    year,
	}
}
