package dto

import "github.com/kieranegan23/GPA-CALC/internal/models"

// RosterView is the roster as the presentation layer consumes it: the
// ordered entries plus the derived GPA and credit totals. Both derivations
// are recomputed from the list on every read; nothing is cached.
type RosterView struct {
	Entries      []models.ClassEntry `json:"entries"`
	GPA          string              `json:"gpa"`
	TotalCredits int                 `json:"total_credits"`
}
