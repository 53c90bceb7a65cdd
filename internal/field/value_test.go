package field

import "testing"

func TestValueStates(t *testing.T) {
	var zero Value[int]
	if !zero.IsAbsent() {
		t.Errorf("zero value: got %v, want absent", zero.State())
	}

	k := Known(12)
	if n, ok := k.Get(); !ok || n != 12 {
		t.Errorf("Known(12).Get: got %d/%v", n, ok)
	}
	if got := Unknown[int]().OrElse(5); got != 5 {
		t.Errorf("OrElse: got %d, want 5", got)
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value[string]
		want bool
	}{
		{"both absent", Absent[string](), Absent[string](), true},
		{"both unknown", Unknown[string](), Unknown[string](), true},
		{"absent vs unknown", Absent[string](), Unknown[string](), false},
		{"same known", Known("a"), Known("a"), true},
		{"different known", Known("a"), Known("b"), false},
		{"known vs unknown", Known(""), Unknown[string](), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	if got := Unknown[int]().String(); got != "?" {
		t.Errorf("unknown: got %q", got)
	}
	if got := Absent[int]().String(); got != "" {
		t.Errorf("absent: got %q", got)
	}
	if got := Known(3).String(); got != "3" {
		t.Errorf("known: got %q", got)
	}
}

func TestOrElseString(t *testing.T) {
	if got := Known(33).OrElseString("Unknown"); got != "33" {
		t.Errorf("known: got %q", got)
	}
	if got := Unknown[int]().OrElseString("Unknown"); got != "Unknown" {
		t.Errorf("unknown: got %q", got)
	}
	if got := Absent[int]().OrElseString("-"); got != "-" {
		t.Errorf("absent: got %q", got)
	}
}
