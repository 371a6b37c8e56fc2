package editdist

import (
	"fmt"
	"strings"
)

// Ops counts the operations on one minimal path through a Matrix
type Ops struct {
	Matches       int `json:"matches"`
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
}

// Edits is the total cost of the path, equal to the edit distance
func (o Ops) Edits() int {
	return o.Substitutions + o.Insertions + o.Deletions
}

// Align walks m back from the bottom right cell to the origin. Matches are
// taken first, then substitutions, deletions and insertions, so ties between
// equally cheap paths always resolve the same way.
func Align[T comparable](a, b []T, m Matrix) Ops {
	var ops Ops
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1] && m[i][j] == m[i-1][j-1]:
			ops.Matches++
			i--
			j--
		case i > 0 && j > 0 && m[i][j] == m[i-1][j-1]+1:
			ops.Substitutions++
			i--
			j--
		case i > 0 && m[i][j] == m[i-1][j]+1:
			ops.Deletions++ // In a, missing from b
			i--
		default:
			ops.Insertions++ // Extra in b
			j--
		}
	}
	return ops
}

// Render draws m with a down the side and b across the top
func Render[T any](a, b []T, m Matrix) string {
	label := func(v T) string {
		s := fmt.Sprint(v)
		if r, ok := any(v).(rune); ok {
			s = string(r)
		}
		if rs := []rune(s); len(rs) > 3 {
			s = string(rs[:3])
		}
		return s
	}
	var c strings.Builder
	// Header
	fmt.Fprint(&c, "            ")
	for j := 0; j < len(b); j++ {
		fmt.Fprintf(&c, " %3s", label(b[j]))
	}
	fmt.Fprintf(&c, "\n            ")
	for j := 0; j < len(b); j++ {
		fmt.Fprintf(&c, " ---")
	}
	// First row of numbers
	fmt.Fprint(&c, "\n        ")
	for j := 0; j < len(b)+1; j++ {
		fmt.Fprintf(&c, " %3d", m[0][j])
	}
	// Other rows
	for i := 1; i < len(a)+1; i++ {
		fmt.Fprintf(&c, "\n   %3s  |", label(a[i-1]))
		for j := 0; j < len(b)+1; j++ {
			fmt.Fprintf(&c, " %3d", m[i][j])
		}
	}
	return c.String()
}
