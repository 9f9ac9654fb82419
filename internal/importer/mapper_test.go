package importer

import (
	"reflect"
	"testing"
)

var shiftDefs = []ColumnDefinition{
	{Key: "employee", Label: "Employee", Required: true},
	{Key: "shift_date", Label: "Shift Date", Required: true, KeepText: true},
	{Key: "hours", Label: "Hours"},
	{Key: "notes", Label: "Notes"},
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Employee", "employee"},
		{"shift_date", "shiftdate"},
		{"Shift Date", "shiftdate"},
		{"SHIFT-DATE", "shiftdate"},
		{"  spaced  out  ", "spacedout"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAutoMap(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []ColumnMapping
	}{
		{
			name:    "exact key match",
			headers: []string{"employee", "hours"},
			want: []ColumnMapping{
				{SourceColumn: "employee", TargetKey: "employee"},
				{SourceColumn: "hours", TargetKey: "hours"},
			},
		},
		{
			name:    "label and case insensitive match",
			headers: []string{"EMPLOYEE", "Shift Date"},
			want: []ColumnMapping{
				{SourceColumn: "EMPLOYEE", TargetKey: "employee"},
				{SourceColumn: "Shift Date", TargetKey: "shift_date"},
			},
		},
		{
			name:    "separator variants match",
			headers: []string{"shift-date", "shiftdate"},
			want: []ColumnMapping{
				{SourceColumn: "shift-date", TargetKey: "shift_date"},
				{SourceColumn: "shiftdate", TargetKey: "shift_date"},
			},
		},
		{
			name:    "unknown header left unmapped",
			headers: []string{"employee", "favorite color"},
			want: []ColumnMapping{
				{SourceColumn: "employee", TargetKey: "employee"},
				{SourceColumn: "favorite color", TargetKey: ""},
			},
		},
		{
			name:    "no fuzzy matching",
			headers: []string{"employe", "hourss"},
			want: []ColumnMapping{
				{SourceColumn: "employe", TargetKey: ""},
				{SourceColumn: "hourss", TargetKey: ""},
			},
		},
		{
			name:    "no headers",
			headers: nil,
			want:    []ColumnMapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoMap(tt.headers, shiftDefs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AutoMap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutoMap_Deterministic(t *testing.T) {
	headers := []string{"Employee", "Shift Date", "hours", "extra"}

	first := AutoMap(headers, shiftDefs)
	for i := 0; i < 10; i++ {
		again := AutoMap(headers, shiftDefs)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestAutoMap_OneEntryPerHeader(t *testing.T) {
	headers := []string{"employee", "employee", "hours"}

	got := AutoMap(headers, shiftDefs)
	if len(got) != len(headers) {
		t.Fatalf("len = %d, want %d", len(got), len(headers))
	}
	// duplicate headers both map; the collision is resolved at
	// materialization, not here
	if got[0].TargetKey != "employee" || got[1].TargetKey != "employee" {
		t.Errorf("duplicate headers = %v, want both mapped to employee", got[:2])
	}
}

func TestUpdateMapping(t *testing.T) {
	base := []ColumnMapping{
		{SourceColumn: "who", TargetKey: ""},
		{SourceColumn: "when", TargetKey: "shift_date"},
	}

	got := UpdateMapping(base, "who", "employee")

	want := []ColumnMapping{
		{SourceColumn: "who", TargetKey: "employee"},
		{SourceColumn: "when", TargetKey: "shift_date"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UpdateMapping() = %v, want %v", got, want)
	}

	// input untouched
	if base[0].TargetKey != "" {
		t.Errorf("input mutated: %v", base)
	}
}

func TestUpdateMapping_ClearToSkip(t *testing.T) {
	base := []ColumnMapping{{SourceColumn: "who", TargetKey: "employee"}}

	got := UpdateMapping(base, "who", "")
	if got[0].TargetKey != "" {
		t.Errorf("TargetKey = %q, want skip", got[0].TargetKey)
	}
}

func TestUpdateMapping_UnknownColumnIsNoop(t *testing.T) {
	base := []ColumnMapping{{SourceColumn: "who", TargetKey: "employee"}}

	got := UpdateMapping(base, "nope", "hours")
	if !reflect.DeepEqual(got, base) {
		t.Errorf("UpdateMapping() = %v, want %v", got, base)
	}
}
