package scorecsv

import (
	"fmt"
	"strconv"
)

// IssueKind classifies why a value was defaulted during parsing.
type IssueKind string

const (
	IssueMissingHeader IssueKind = "missing_header"
	IssueSyntax        IssueKind = "syntax"
	IssueShortRecord   IssueKind = "short_record"
	IssueNumber        IssueKind = "number"
	IssueDifficulty    IssueKind = "difficulty"
	IssueClearType     IssueKind = "clear_type"
	IssueDJLevel       IssueKind = "dj_level"
)

// Issue records one defaulted value. Parsing never fails on issues; they are
// collected so the validate command can explain what was dropped or zeroed.
type Issue struct {
	Line   int       `json:"line"`
	Column string    `json:"column,omitempty"`
	Kind   IssueKind `json:"kind"`
	Value  string    `json:"value,omitempty"`
}

func (i Issue) String() string {
	where := "header"
	if i.Line > 0 {
		where = "line " + strconv.Itoa(i.Line)
	}
	if i.Column == "" {
		return fmt.Sprintf("%s: %s %q", where, i.Kind, i.Value)
	}
	return fmt.Sprintf("%s: %s: %s %q", where, i.Column, i.Kind, i.Value)
}

// Issues is the ordered list of issues for one parse.
type Issues []Issue

// Count returns how many issues have the given kind.
func (is Issues) Count(kind IssueKind) int {
	n := 0
	for _, issue := range is {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}
