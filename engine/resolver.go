package engine

import (
	"strings"

	"github.com/Itish41/asset-audit/models"
)

// Tiers groups candidates by decreasing match precision. The tiers never
// overlap and keep roster order.
type Tiers struct {
	Exact      []models.Candidate `json:"exact"`
	Partial    []models.Candidate `json:"partial"`
	Department []models.Candidate `json:"department"`
	Fallback   []models.Candidate `json:"fallback"`
}

// Best returns the first non-empty tier, or nil when the roster was empty.
func (t Tiers) Best() []models.Candidate {
	for _, tier := range [][]models.Candidate{t.Exact, t.Partial, t.Department, t.Fallback} {
		if len(tier) > 0 {
			return tier
		}
	}
	return nil
}

// Len is the number of candidates across all tiers.
func (t Tiers) Len() int {
	return len(t.Exact) + len(t.Partial) + len(t.Department) + len(t.Fallback)
}

// Resolve ranks candidates against a location string. Comparison is trimmed
// and case-insensitive throughout.
func Resolve(location string, candidates []models.Candidate) Tiers {
	t := Tiers{
		Exact:      []models.Candidate{},
		Partial:    []models.Candidate{},
		Department: []models.Candidate{},
		Fallback:   []models.Candidate{},
	}
	loc := normalize(location)
	if loc == "" {
		t.Fallback = append(t.Fallback, candidates...)
		return t
	}
	locToken := departmentToken(loc)

	for _, c := range candidates {
		cLoc := normalize(c.Location)
		cDept := normalize(c.Department)

		switch {
		case cLoc != "" && cLoc == loc:
			t.Exact = append(t.Exact, c)
		case cLoc != "" && (strings.Contains(cLoc, loc) || strings.Contains(loc, cLoc)):
			t.Partial = append(t.Partial, c)
		case cDept != "" && (strings.Contains(loc, cDept) || strings.Contains(cDept, loc)):
			t.Department = append(t.Department, c)
		case cLoc != "" && locToken != "" && departmentToken(cLoc) == locToken:
			t.Department = append(t.Department, c)
		default:
			t.Fallback = append(t.Fallback, c)
		}
	}
	return t
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// departmentToken is the leading segment of a site string, e.g. "tokyo" for
// "tokyo-3f".
func departmentToken(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '-', '_', '/', ' ', '\t':
			return true
		}
		return false
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
