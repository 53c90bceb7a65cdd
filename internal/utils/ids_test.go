package utils

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []int
		wantErr string
	}{
		{name: "single", args: []string{"3"}, want: []int{3}},
		{name: "comma list", args: []string{"1, 2 ,3"}, want: []int{1, 2, 3}},
		{name: "several args", args: []string{"4", "2,1"}, want: []int{4, 2, 1}},
		{name: "repeats kept once", args: []string{"1,1", "2", "1"}, want: []int{1, 2}},
		{name: "blank entries", args: []string{",5,,"}, want: []int{5}},
		{name: "nothing", args: []string{" , "}, want: nil},
		{name: "not a number", args: []string{"1,x"}, wantErr: `invalid id "x"`},
		{name: "zero", args: []string{"0"}, wantErr: `invalid id "0"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDs(tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseIDs(%q): got error %v, want %q", tt.args, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIDs(%q): %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseIDs(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}
