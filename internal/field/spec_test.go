package field

import (
	"errors"
	"testing"
)

func TestIntSpecValidate(t *testing.T) {
	day := IntSpec{Name: "Birth Day", Min: Bound(1), Max: Bound(31), Sentinels: []string{"?"}}
	year := IntSpec{Name: "Birth Year", Sentinels: []string{"?", ""}}

	tests := []struct {
		name    string
		spec    IntSpec
		raw     string
		want    string
		wantErr bool
	}{
		{"in range", day, "15", "15", false},
		{"lower bound", day, "1", "1", false},
		{"upper bound", day, "31", "31", false},
		{"below range", day, "0", "", true},
		{"above range", day, "32", "", true},
		{"not a number", day, "abc", "", true},
		{"fraction", day, "1.5", "", true},
		{"unknown sentinel", day, "?", "?", false},
		{"blank not allowed", day, "", "", true},
		{"unbounded", year, "-40", "-40", false},
		{"blank sentinel", year, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Validate(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate(%q): got %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIntSpecParse(t *testing.T) {
	spec := IntSpec{Name: "Death Day", Min: Bound(1), Max: Bound(31), Sentinels: []string{"?", ""}}

	v, err := spec.Parse("?")
	if err != nil || !v.IsUnknown() {
		t.Errorf("Parse(?): got %v (%v), want unknown", v.State(), err)
	}
	v, err = spec.Parse("")
	if err != nil || !v.IsAbsent() {
		t.Errorf("Parse(\"\"): got %v (%v), want absent", v.State(), err)
	}
	v, err = spec.Parse("7")
	if err != nil {
		t.Fatalf("Parse(7) failed: %v", err)
	}
	if n, ok := v.Get(); !ok || n != 7 {
		t.Errorf("Parse(7): got %d/%v, want 7/true", n, ok)
	}
}

func TestStrSpecValidate(t *testing.T) {
	sex := StrSpec{Name: "Sex", Allowed: []string{"M", "F"}, Fold: FoldLower}
	name := StrSpec{Name: "First Name", Charset: "abcdefghijklmnopqrstuvwxyz '-", Fold: FoldLower, Sentinels: []string{"?"}}
	exact := StrSpec{Name: "Flag", Allowed: []string{"t", "f"}}

	tests := []struct {
		name    string
		spec    StrSpec
		raw     string
		want    string
		wantErr bool
	}{
		{"allowed folded", sex, "M", "m", false},
		{"allowed lower", sex, "f", "f", false},
		{"not allowed", sex, "x", "", true},
		{"charset", name, "Mary-Jane", "mary-jane", false},
		{"charset apostrophe", name, "O'Neil", "o'neil", false},
		{"charset rejects digits", name, "R2D2", "", true},
		{"charset rejects empty", name, "", "", true},
		{"sentinel bypasses", name, "?", "?", false},
		{"no fold is exact", exact, "T", "", true},
		{"no fold match", exact, "t", "t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Validate(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate(%q): got %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestInvalidInputError(t *testing.T) {
	spec := IntSpec{Name: "Mother ID", Min: Bound(0)}
	_, err := spec.Validate("-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false for %v", err)
	}
	var ie *InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
	if ie.Field != "Mother ID" || ie.Value != "-1" {
		t.Errorf("error context: got field %q value %q", ie.Field, ie.Value)
	}
}

func TestDescribe(t *testing.T) {
	spec := IntSpec{Name: "Month", Min: Bound(1), Max: Bound(12), Sentinels: []string{"?", ""}}
	want := "a whole number, minimum 1, maximum 12, or '?' or blank"
	if got := spec.Describe(); got != want {
		t.Errorf("Describe: got %q, want %q", got, want)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{"t", true, false},
		{"F", false, false},
		{"Yes", true, false},
		{"no", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := ParseBool(BoolSpec, tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBool(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBool(%q): got %v, want %v", tt.raw, got, tt.want)
		}
	}
}
