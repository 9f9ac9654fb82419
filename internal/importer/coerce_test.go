package importer

import (
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{name: "empty is nil", in: "", want: nil},
		{name: "integer", in: "42", want: float64(42)},
		{name: "negative integer", in: "-17", want: float64(-17)},
		{name: "decimal", in: "3.14", want: 3.14},
		{name: "leading decimal point", in: ".5", want: 0.5},
		{name: "exponent", in: "1e3", want: float64(1000)},
		{name: "explicit plus sign", in: "+7", want: float64(7)},
		{name: "internal whitespace tolerated around number", in: " 42 ", want: float64(42)},
		{name: "plain text", in: "alice", want: "alice"},
		{name: "mixed alphanumeric", in: "42abc", want: "42abc"},
		{name: "date stays text", in: "2026-01-15", want: "2026-01-15"},
		{name: "time stays text", in: "07:30", want: "07:30"},
		{name: "thousands separator stays text", in: "1,234", want: "1,234"},
		{name: "leading zeros lost", in: "007", want: float64(7)},
		{name: "infinity parses", in: "inf", want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(tt.in); got != tt.want {
				t.Errorf("Coerce(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestCoerceFor_KeepText(t *testing.T) {
	text := &ColumnDefinition{Key: "zip", Label: "Zip", KeepText: true}
	numeric := &ColumnDefinition{Key: "hours", Label: "Hours"}

	if got := coerceFor("02135", text); got != "02135" {
		t.Errorf("coerceFor keep-text = %v, want %q", got, "02135")
	}
	if got := coerceFor("02135", numeric); got != float64(2135) {
		t.Errorf("coerceFor numeric = %v, want %v", got, float64(2135))
	}
	if got := coerceFor("", text); got != nil {
		t.Errorf("coerceFor empty keep-text = %v, want nil", got)
	}
	if got := coerceFor("8", nil); got != float64(8) {
		t.Errorf("coerceFor nil def = %v, want %v", got, float64(8))
	}
}
