package importer

import (
	"reflect"
	"testing"
)

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		mapping []ColumnMapping
		want    []string
	}{
		{
			name:    "nothing mapped",
			mapping: nil,
			want:    []string{"employee", "shift_date"},
		},
		{
			name: "all required mapped",
			mapping: []ColumnMapping{
				{SourceColumn: "a", TargetKey: "employee"},
				{SourceColumn: "b", TargetKey: "shift_date"},
			},
			want: nil,
		},
		{
			name: "one required missing",
			mapping: []ColumnMapping{
				{SourceColumn: "a", TargetKey: "employee"},
				{SourceColumn: "b", TargetKey: "hours"},
			},
			want: []string{"shift_date"},
		},
		{
			name: "skipped entries do not count",
			mapping: []ColumnMapping{
				{SourceColumn: "a", TargetKey: ""},
				{SourceColumn: "b", TargetKey: ""},
			},
			want: []string{"employee", "shift_date"},
		},
		{
			name: "optional fields never reported",
			mapping: []ColumnMapping{
				{SourceColumn: "a", TargetKey: "employee"},
				{SourceColumn: "b", TargetKey: "shift_date"},
				{SourceColumn: "c", TargetKey: ""},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingRequired(shiftDefs, tt.mapping)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingRequired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingRequired_DefinitionOrder(t *testing.T) {
	defs := []ColumnDefinition{
		{Key: "z", Label: "Z", Required: true},
		{Key: "a", Label: "A", Required: true},
		{Key: "m", Label: "M", Required: true},
	}

	got := MissingRequired(defs, nil)
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingRequired() = %v, want definition order %v", got, want)
	}
}

func TestMissingRequiredLabels(t *testing.T) {
	got := MissingRequiredLabels(shiftDefs, nil)
	want := []string{"Employee", "Shift Date"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingRequiredLabels() = %v, want %v", got, want)
	}

	mapping := []ColumnMapping{
		{SourceColumn: "a", TargetKey: "employee"},
		{SourceColumn: "b", TargetKey: "shift_date"},
	}
	if got := MissingRequiredLabels(shiftDefs, mapping); got != nil {
		t.Errorf("MissingRequiredLabels() = %v, want nil", got)
	}
}
