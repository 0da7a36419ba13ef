package main

import (
	"fmt"
	"io"
	"strings"
)

// uiMode is the value of --ui: whether directory runs draw the bubbletea
// progress view on stderr.
type uiMode string

const (
	uiModeAuto uiMode = "auto" // only when stderr is a terminal
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

// readUIMode accepts the flag value in any case, with surrounding blanks;
// an empty value means auto.
func readUIMode(value string) (uiMode, error) {
	v := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if v == "" {
		return uiModeAuto, nil
	}
	switch v {
	case uiModeAuto, uiModeOn, uiModeOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI reports whether progress goes to w as a live view rather
// than plain lines. --quiet silences auto but not an explicit on.
func shouldUseTUI(mode uiMode, w io.Writer, quiet bool) bool {
	if mode == uiModeAuto {
		return !quiet && isTerminal(w)
	}
	return mode == uiModeOn
}
