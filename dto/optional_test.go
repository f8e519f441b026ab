package dto

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringPresence(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantSet bool
		wantNil bool
		want    string
	}{
		{name: "absent", body: `{}`, wantSet: false, wantNil: true},
		{name: "null", body: `{"assignee_id": null}`, wantSet: true, wantNil: true},
		{name: "value", body: `{"assignee_id": "u-1"}`, wantSet: true, want: "u-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req UpdateIssueRequest
			if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.AssigneeID.Set != tc.wantSet {
				t.Errorf("Set = %v, want %v", req.AssigneeID.Set, tc.wantSet)
			}
			if tc.wantNil && req.AssigneeID.Value != nil {
				t.Errorf("expected nil value, got %q", *req.AssigneeID.Value)
			}
			if !tc.wantNil && (req.AssigneeID.Value == nil || *req.AssigneeID.Value != tc.want) {
				t.Errorf("unexpected value %v", req.AssigneeID.Value)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var req UpdateIssueRequest
	if err := json.Unmarshal([]byte(`{"assignee_id": 42}`), &req); err == nil {
		t.Fatal("expected error for numeric assignee_id")
	}
}
