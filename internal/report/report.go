// Package report implements C9: grouping atomic change records and
// emitting them as HTML and JSON reports.
package report

import (
	"strings"

	"github.com/oxhq/armor/internal/describe"
)

// GroupedRecord is one row of the final report: every atomic Record
// sharing a (HeaderFile, Name) key, collapsed into a single entry.
type GroupedRecord struct {
	HeaderFile    string `json:"headerfile"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ChangeType    string `json:"changetype"`
	Compatibility string `json:"compatibility"`
}

const (
	changeTypeCompatibility = "Compatibility Changed"
	changeTypeFunctionality = "Functionality Added"
)

// Group collapses atomic records by (headerfile, name) per spec.md §4.7.
// Order is stable: a group's position is its first contributing record's
// position, so report output is deterministic across runs with the same
// input.
func Group(records []describe.Record) []GroupedRecord {
	type key struct{ headerFile, name string }

	order := make([]key, 0, len(records))
	groups := make(map[key]*GroupedRecord)

	for _, r := range records {
		k := key{r.HeaderFile, r.Name}
		g, ok := groups[k]
		if !ok {
			g = &GroupedRecord{HeaderFile: r.HeaderFile, Name: r.Name, ChangeType: changeTypeFunctionality}
			groups[k] = g
			order = append(order, k)
		}

		if g.Description == "" {
			g.Description = r.Description
		} else {
			g.Description = g.Description + "\n" + r.Description
		}

		if r.ChangeType == describe.CompatibilityChanged {
			g.ChangeType = changeTypeCompatibility
		}
		g.Compatibility = string(compatibilityOf(g, r))
	}

	out := make([]GroupedRecord, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

// compatibilityOf keeps the worst-seen verdict for a group: once any
// contributor is backward_incompatible, the group stays
// backward_incompatible regardless of later contributors.
func compatibilityOf(g *GroupedRecord, r describe.Record) describe.Compatibility {
	if g.Compatibility == string(describe.BackwardIncompatible) || r.Compatibility == describe.BackwardIncompatible {
		return describe.BackwardIncompatible
	}
	return r.Compatibility
}

// lineBreaks renders a description's newlines as HTML line-break markers
// for the HTML report.
func lineBreaks(description string) string {
	return strings.ReplaceAll(description, "\n", "<br>")
}
