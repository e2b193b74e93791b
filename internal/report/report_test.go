package report

import (
	"strings"
	"testing"

	"github.com/oxhq/armor/internal/describe"
)

func TestGroupCollapsesByHeaderAndName(t *testing.T) {
	records := []describe.Record{
		{HeaderFile: "api.h", Name: "foo", Description: "line one", ChangeType: describe.CompatibilityChanged, Compatibility: describe.BackwardIncompatible},
		{HeaderFile: "api.h", Name: "foo", Description: "line two", ChangeType: describe.FunctionalityChanged, Compatibility: describe.BackwardCompatible},
	}
	grouped := Group(records)
	if len(grouped) != 1 {
		t.Fatalf("expected 1 grouped record, got %d", len(grouped))
	}
	g := grouped[0]
	if g.ChangeType != changeTypeCompatibility {
		t.Fatalf("ChangeType = %q, want %q", g.ChangeType, changeTypeCompatibility)
	}
	if !strings.Contains(g.Description, "line one") || !strings.Contains(g.Description, "line two") {
		t.Fatalf("expected both lines concatenated, got %q", g.Description)
	}
}

func TestWriteJSONEmptyIsEmptyArray(t *testing.T) {
	b, err := WriteJSON(nil)
	if err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("WriteJSON(nil) = %q, want []", string(b))
	}
}

func TestWriteHTMLEmptyHasPlaceholder(t *testing.T) {
	b, err := WriteHTML(nil)
	if err != nil {
		t.Fatalf("WriteHTML error: %v", err)
	}
	if !strings.Contains(string(b), "No differences detected.") {
		t.Fatalf("expected placeholder row in empty HTML report")
	}
}

func TestWriteHTMLColorsIncompatible(t *testing.T) {
	records := []GroupedRecord{{HeaderFile: "api.h", Name: "foo", Description: "d", ChangeType: changeTypeCompatibility, Compatibility: string(describe.BackwardIncompatible)}}
	b, err := WriteHTML(records)
	if err != nil {
		t.Fatalf("WriteHTML error: %v", err)
	}
	if !strings.Contains(string(b), "incompatible") {
		t.Fatalf("expected incompatible CSS class in output")
	}
}
