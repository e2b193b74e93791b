// Package describe implements C8, the Change Describer: it turns the
// diffengine's tagged difference tree into atomic, human-readable change
// records with a centralized compatibility verdict.
//
// Grounded on internal/config/output.go's PrintResultCLI (verbosity-tiered
// human-readable rendering of a match/replace summary), generalized from
// describing one file's matches to describing one API's change tree.
package describe

import (
	"fmt"
	"strings"

	"github.com/oxhq/armor/internal/apinode"
	"github.com/oxhq/armor/internal/diffengine"
)

// ChangeType is the category an atomic record belongs to.
type ChangeType string

const (
	FunctionalityChanged  ChangeType = "Functionality_changed"
	CompatibilityChanged  ChangeType = "Compatibility_changed"
	BackwardCompatible    Compatibility = "backward_compatible"
	BackwardIncompatible  Compatibility = "backward_incompatible"
)

// Compatibility is the deterministic verdict derived from ChangeType. This
// mapping is centralized here and must never be overridden by a caller:
// FunctionalityChanged -> BackwardCompatible, everything else ->
// BackwardIncompatible (spec.md §4.6).
type Compatibility string

func compatibilityFor(ct ChangeType) Compatibility {
	if ct == FunctionalityChanged {
		return BackwardCompatible
	}
	return BackwardIncompatible
}

// Record is one atomic, human-readable change description.
type Record struct {
	HeaderFile    string
	Name          string
	Description   string
	ChangeType    ChangeType
	Compatibility Compatibility
}

// Describe converts the top-level difference-tree array produced by
// diffengine.DiffRoots into atomic change records.
func Describe(headerFile string, diffs []*diffengine.DiffNode) []Record {
	var out []Record
	for _, d := range diffs {
		ct := CompatibilityChanged
		if d.Tag == diffengine.TagAdded {
			ct = FunctionalityChanged
		}

		var desc string
		if d.NodeType == apinode.KindFunction || d.NodeType == apinode.KindMethod {
			desc = describeFunctionChange(d)
		} else {
			desc = describeNode(d, d.Tag)
		}

		out = append(out, Record{
			HeaderFile: headerFile, Name: leafName(d.QualifiedName),
			Description: desc, ChangeType: ct, Compatibility: compatibilityFor(ct),
		})
	}
	return out
}

func leafName(qualifiedName string) string {
	idx := strings.LastIndex(qualifiedName, apinode.Separator)
	if idx < 0 {
		return qualifiedName
	}
	return qualifiedName[idx+1:]
}

// describeFunctionChange implements spec.md §4.6's function-node rules.
func describeFunctionChange(d *diffengine.DiffNode) string {
	if d.Tag != diffengine.TagModified {
		return describeNode(d, d.Tag)
	}

	var lines []string

	for _, fc := range d.FieldChanges {
		lines = append(lines, describeFieldChange(d.NodeType, fc))
	}

	var removedParams, addedParams []*diffengine.DiffNode
	for _, c := range d.Children {
		switch {
		case c.NodeType == apinode.KindReturnType && c.Tag == diffengine.TagModified:
			lines = append(lines, fmt.Sprintf("Return type changed from '%s' to '%s'", c.TypeName, fieldChangeNewType(c)))
		case (c.NodeType == apinode.KindReturnType) && c.Tag != diffengine.TagModified:
			// added/removed ReturnType shouldn't occur (every function has
			// exactly one); ignore defensively.
		case c.NodeType == apinode.KindParameter && c.Tag == diffengine.TagModified:
			lines = append(lines, fmt.Sprintf("Parameter '%s' type changed from '%s' to '%s'", leafName(c.QualifiedName), c.TypeName, fieldChangeNewType(c)))
		case c.NodeType == apinode.KindParameter && c.Tag == diffengine.TagRemoved:
			removedParams = append(removedParams, c)
		case c.NodeType == apinode.KindParameter && c.Tag == diffengine.TagAdded:
			addedParams = append(addedParams, c)
		}
	}

	lines = append(lines, pairParameters(removedParams, addedParams)...)

	if len(lines) == 0 {
		return "Function modified"
	}
	return strings.Join(lines, "\n")
}

// fieldChangeNewType extracts the "new" side of a Return type/Parameter
// type change from its single recorded FieldChange (typeName); modified
// ReturnType/Parameter nodes with no children carry exactly one such
// entry when their type differs.
func fieldChangeNewType(d *diffengine.DiffNode) string {
	for _, fc := range d.FieldChanges {
		if fc.Field == "typeName" {
			return fc.New
		}
	}
	return d.TypeName
}

// describeFieldChange phrases one attribute change as "<Kind> attribute
// ...", e.g. "Function attribute inline changed ..." or "Field attribute
// access changed ...".
func describeFieldChange(kind apinode.Kind, fc diffengine.FieldChange) string {
	switch {
	case fc.Old == "" && fc.New != "":
		return fmt.Sprintf("%s attribute %s added '%s'", kind, fc.Field, fc.New)
	case fc.Old != "" && fc.New == "":
		return fmt.Sprintf("%s attribute %s removed '%s'", kind, fc.Field, fc.Old)
	default:
		return fmt.Sprintf("%s attribute %s changed from '%s' to '%s'", kind, fc.Field, fc.Old, fc.New)
	}
}

// pairParameters implements the rename-pairing rule: a removed parameter
// and an added parameter with identical dataType are reported as a
// rename, not as independent remove+add lines.
func pairParameters(removed, added []*diffengine.DiffNode) []string {
	var lines []string
	usedAdded := make(map[int]bool)

	for _, r := range removed {
		paired := -1
		for j, a := range added {
			if usedAdded[j] {
				continue
			}
			if a.DataType == r.DataType {
				paired = j
				break
			}
		}
		if paired >= 0 {
			a := added[paired]
			usedAdded[paired] = true
			lines = append(lines, fmt.Sprintf("Parameter renamed from '%s' to '%s' (type '%s')", leafName(r.QualifiedName), leafName(a.QualifiedName), r.DataType))
			continue
		}
		lines = append(lines, fmt.Sprintf("Parameter '%s' removed (type '%s')", leafName(r.QualifiedName), r.TypeName))
	}

	for j, a := range added {
		if usedAdded[j] {
			continue
		}
		lines = append(lines, fmt.Sprintf("Parameter '%s' added (type '%s')", leafName(a.QualifiedName), a.TypeName))
	}

	return lines
}

// describeNode implements spec.md §4.6's non-function-node rules.
func describeNode(d *diffengine.DiffNode, effectiveTag diffengine.Tag) string {
	switch effectiveTag {
	case diffengine.TagAdded, diffengine.TagRemoved:
		verb := "added"
		if effectiveTag == diffengine.TagRemoved {
			verb = "removed"
		}
		head := fmt.Sprintf("%s %s: '%s'", d.NodeType, verb, d.QualifiedName)
		if d.DataType != "" {
			head += fmt.Sprintf(" with type '%s'", d.DataType)
		}
		lines := []string{head}
		for _, c := range d.Children {
			lines = append(lines, describeNode(c, effectiveTag))
		}
		return strings.Join(lines, "\n")
	case diffengine.TagModified:
		return describeModifiedNode(d)
	default:
		return ""
	}
}

func describeModifiedNode(d *diffengine.DiffNode) string {
	var lines []string
	for _, fc := range d.FieldChanges {
		lines = append(lines, describeFieldChange(d.NodeType, fc))
	}

	removed := make(map[string]*diffengine.DiffNode)
	added := make(map[string]*diffengine.DiffNode)
	var modified []*diffengine.DiffNode

	for _, c := range d.Children {
		switch c.Tag {
		case diffengine.TagRemoved:
			removed[groupKey(c)] = c
		case diffengine.TagAdded:
			added[groupKey(c)] = c
		case diffengine.TagModified:
			modified = append(modified, c)
		}
	}

	matchedAdded := make(map[string]bool)

	for key, r := range removed {
		if a, ok := added[key]; ok {
			lines = append(lines, fmt.Sprintf("%s '%s' type changed from '%s' to '%s'", r.NodeType, leafName(r.QualifiedName), r.TypeName, a.TypeName))
			matchedAdded[key] = true
			continue
		}
		if r.NodeType == apinode.KindParameter {
			if a, stem, ok := matchByStem(r, added, matchedAdded); ok {
				lines = append(lines, fmt.Sprintf("Parameter modified: '%s' type changed from '%s' to '%s'", stem, r.TypeName, a.TypeName))
				matchedAdded[groupKey(a)] = true
				continue
			}
		}
		lines = append(lines, describeNode(r, diffengine.TagRemoved))
	}

	for key, a := range added {
		if matchedAdded[key] {
			continue
		}
		lines = append(lines, describeNode(a, diffengine.TagAdded))
	}

	for _, m := range modified {
		lines = append(lines, describeModifiedNode(m))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("%s '%s' modified", d.NodeType, d.QualifiedName)
	}
	return strings.Join(lines, "\n")
}

func groupKey(d *diffengine.DiffNode) string {
	return string(d.NodeType) + "\x00" + d.QualifiedName
}

// matchByStem pairs a removed Parameter with an added one that shares the
// same base name once a trailing qualifier decoration is stripped (a
// positional placeholder suffix, or a numeric disambiguator), e.g.
// "count" vs "count2" after a parameter was renamed with a numeric
// suffix. This covers the "stripped-qualifier stem" fallback spec.md
// §4.6 calls for when an exact qualifiedName/nodeType match fails.
func matchByStem(r *diffengine.DiffNode, added map[string]*diffengine.DiffNode, matchedAdded map[string]bool) (*diffengine.DiffNode, string, bool) {
	rStem := stem(leafName(r.QualifiedName))
	for key, a := range added {
		if matchedAdded[key] || a.NodeType != apinode.KindParameter {
			continue
		}
		if stem(leafName(a.QualifiedName)) == rStem {
			return a, rStem, true
		}
	}
	return nil, "", false
}

func stem(name string) string {
	s := strings.TrimRight(name, "0123456789")
	s = strings.TrimPrefix(s, "#")
	return s
}
