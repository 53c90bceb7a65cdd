package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nibzard/familytree-go/internal/field"
)

func TestAskReprompts(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n40\n  12 \n"), &out)
	month := field.IntSpec{Name: "Month", Min: field.Bound(1), Max: field.Bound(12)}

	got, err := p.Ask(month, "Birth month")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "12" {
		t.Errorf("got %q, want %q", got, "12")
	}
	if n := strings.Count(out.String(), "Invalid input"); n != 2 {
		t.Errorf("expected 2 rejections, got %d:\n%s", n, out.String())
	}
	if n := strings.Count(out.String(), "Birth month: "); n != 3 {
		t.Errorf("expected 3 prompts, got %d", n)
	}
}

func TestAskFoldsCase(t *testing.T) {
	p := New(strings.NewReader("M\n"), io.Discard)
	sex := field.StrSpec{Name: "Sex", Allowed: []string{"m", "f"}, Fold: field.FoldLower}
	got, err := p.Ask(sex, "Sex")
	if err != nil {
		t.Fatal(err)
	}
	if got != "m" {
		t.Errorf("got %q, want %q", got, "m")
	}
}

func TestAskIntSentinel(t *testing.T) {
	p := New(strings.NewReader("?\n"), io.Discard)
	day := field.IntSpec{Name: "Day", Min: field.Bound(1), Max: field.Bound(31), Sentinels: []string{"?"}}
	v, err := p.AskInt(day, "Day")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsUnknown() {
		t.Errorf("got %v, want unknown", v)
	}
}

func TestConfirm(t *testing.T) {
	p := New(strings.NewReader("perhaps\nYES\nn\n"), io.Discard)
	yes, err := p.Confirm("Alive?")
	if err != nil || !yes {
		t.Fatalf("first Confirm: %v %v", yes, err)
	}
	no, err := p.Confirm("Alive?")
	if err != nil || no {
		t.Fatalf("second Confirm: %v %v", no, err)
	}
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("0\n3\n2\n"), &out)
	idx, err := p.Choose("MENU:", []string{"View", "Add"})
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("got %d, want 1", idx)
	}
	if !strings.Contains(out.String(), "  2. Add") {
		t.Errorf("options not listed:\n%s", out.String())
	}
}

func TestEOF(t *testing.T) {
	p := New(strings.NewReader("bad"), io.Discard)
	spec := field.IntSpec{Name: "N"}
	if _, err := p.Ask(spec, "N"); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want io.EOF", err)
	}

	p = New(strings.NewReader("7"), io.Discard)
	got, err := p.Ask(spec, "N")
	if err != nil || got != "7" {
		t.Errorf("final line without newline: got %q %v", got, err)
	}
}
