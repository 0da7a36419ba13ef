package main

import (
	"bytes"
	"testing"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"Off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("readUIMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldUseTUI(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		mode  uiMode
		quiet bool
		want  bool
	}{
		{uiModeOn, false, true},
		{uiModeOn, true, true},
		{uiModeOff, false, false},
		{uiModeAuto, false, false}, // not a terminal
		{uiModeAuto, true, false},
	}
	for _, tt := range tests {
		if got := shouldUseTUI(tt.mode, &buf, tt.quiet); got != tt.want {
			t.Fatalf("shouldUseTUI(%s, quiet=%v) = %v, want %v", tt.mode, tt.quiet, got, tt.want)
		}
	}
}
