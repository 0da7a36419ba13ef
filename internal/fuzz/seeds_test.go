package fuzztests

import (
	"bytes"
	"testing"
)

func TestClampInput(t *testing.T) {
	long := bytes.Repeat([]byte("a"), maxFuzzInput+10)
	got := clampInput(long)
	if len(got) != maxFuzzInput {
		t.Fatalf("clamped len = %d, want %d", len(got), maxFuzzInput)
	}
	got[0] = 'b'
	if long[0] != 'a' {
		t.Fatalf("clampInput must copy the input")
	}

	short := []byte("{a: 1}")
	if got := clampInput(short); !bytes.Equal(got, short) {
		t.Fatalf("short input changed: %q", got)
	}
}
