package storage

import (
	"reflect"
	"testing"
)

func TestAssignmentsEmpty(t *testing.T) {
	var a Assignments
	if !a.Empty() {
		t.Error("fresh Assignments should be empty")
	}
	a.Set("name", "x")
	if a.Empty() {
		t.Error("Assignments with one clause should not be empty")
	}
}

func TestAssignmentsClause(t *testing.T) {
	var a Assignments
	a.Set("name", "widget")
	a.Set("count", 3)
	a.SetRaw("updated_at", "CURRENT_TIMESTAMP")

	clause, args := a.Clause()
	if clause != "name = ?, count = ?, updated_at = CURRENT_TIMESTAMP" {
		t.Errorf("clause = %q", clause)
	}
	if !reflect.DeepEqual(args, []any{"widget", 3}) {
		t.Errorf("args = %v", args)
	}
}

func TestAssignmentsSetRawBindsNoArg(t *testing.T) {
	var a Assignments
	a.SetRaw("applied_date", "DATE('now')")

	clause, args := a.Clause()
	if clause != "applied_date = DATE('now')" {
		t.Errorf("clause = %q", clause)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}
