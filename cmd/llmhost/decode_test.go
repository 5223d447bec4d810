package main

import "testing"

func TestParseTokenList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int64
		wantErr bool
	}{
		{"simple", "1,2,3", []int64{1, 2, 3}, false},
		{"whitespace", " 10 , 20 ,30 ", []int64{10, 20, 30}, false},
		{"trailing comma", "5,6,", []int64{5, 6}, false},
		{"single", "99", []int64{99}, false},
		{"empty", "", nil, true},
		{"only commas", ",,,", nil, true},
		{"not a number", "1,abc,3", nil, true},
		{"float", "1.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTokenList(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTokenList(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTokenList(%q): %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
