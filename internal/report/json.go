package report

import "encoding/json"

// WriteJSON serializes grouped records with 4-space indentation, per
// spec.md §4.7. Grounded on the crossplane-diff structured renderer's
// json.MarshalIndent use for its own grouped diff output.
func WriteJSON(records []GroupedRecord) ([]byte, error) {
	if records == nil {
		records = []GroupedRecord{}
	}
	return json.MarshalIndent(records, "", "    ")
}
