package models

import "strings"

// Full term names offered by the term selector.
const (
	TermSpring = "Spring"
	TermFall   = "Fall"
	TermSummer = "Summer"
	TermWinter = "Winter"
)

// termAbbrevs is the fixed term to abbreviation table. Terms outside the
// table pass through unabbreviated.
var termAbbrevs = map[string]string{
	TermSpring: "SP",
	TermFall:   "FA",
	TermSummer: "SM",
	TermWinter: "WN",
}

// Terms lists the selectable term names in display order.
func Terms() []string {
	return []string{TermFall, TermSpring, TermSummer, TermWinter}
}

// EncodeSemester combines a full term name and a two-digit year into the
// stored form, e.g. ("Fall", "24") -> "FA 24".
func EncodeSemester(term, year string) string {
	abbrev, ok := termAbbrevs[term]
	if !ok {
		abbrev = term
	}
	return abbrev + " " + year
}

// DecodeSemester splits a stored semester back into term and year for
// editing. Anything that is not exactly two space-separated tokens decodes
// to empty strings; that fallback is lenient on purpose, not an error.
// Round-tripping any encoder-produced value is lossless.
func DecodeSemester(semester string) (term, year string) {
	parts := strings.Split(semester, " ")
	if len(parts) != 2 {
		return "", ""
	}
	for full, abbrev := range termAbbrevs {
		if abbrev == parts[0] {
			return full, parts[1]
		}
	}
	return parts[0], parts[1]
}
