package value

import (
	"math"
	"testing"
)

func sample() Node {
	return Object{
		"name":  String("bong"),
		"count": Int(3),
		"ratio": Float(0.5),
		"ok":    Bool(true),
		"none":  Null{},
		"list":  Array{Int(1), Array{}, Object{}},
	}
}

func TestEqual(t *testing.T) {
	if !Equal(sample(), sample()) {
		t.Fatalf("identical trees must be equal")
	}
	cases := []struct {
		name string
		a, b Node
	}{
		{"int vs float", Int(1), Float(1)},
		{"bool", Bool(true), Bool(false)},
		{"array length", Array{Int(1)}, Array{Int(1), Int(2)}},
		{"array order", Array{Int(1), Int(2)}, Array{Int(2), Int(1)}},
		{"object key", Object{"a": Null{}}, Object{"b": Null{}}},
		{"nested", Object{"a": Array{String("x")}}, Object{"a": Array{String("y")}}},
		{"nil", nil, Null{}},
	}
	for _, tt := range cases {
		if Equal(tt.a, tt.b) {
			t.Fatalf("%s: expected not equal", tt.name)
		}
	}
	if !Equal(nil, nil) {
		t.Fatalf("nil trees are equal")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Object{"b": Null{}, "a": Null{}, "c": Null{}}.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("keys: %v", keys)
	}
}

func TestAnyRoundTrip(t *testing.T) {
	n := sample()
	back, err := FromAny(ToAny(n))
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if !Equal(n, back) {
		t.Fatalf("round trip changed the tree: %#v", back)
	}
}

func TestFromAnyDecoderShapes(t *testing.T) {
	got, err := FromAny(map[any]any{
		"small": int8(-3),
		"u":     uint32(7),
		"f":     float32(1.5),
		"items": []any{uint8(1), nil},
	})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	want := Object{
		"small": Int(-3),
		"u":     Int(7),
		"f":     Float(1.5),
		"items": Array{Int(1), Null{}},
	}
	if !Equal(got, want) {
		t.Fatalf("got %#v", got)
	}
}

func TestFromAnyErrors(t *testing.T) {
	if _, err := FromAny(uint64(math.MaxUint64)); err == nil {
		t.Fatalf("expected range error")
	}
	if _, err := FromAny(map[any]any{1: "x"}); err == nil {
		t.Fatalf("expected key error")
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestDepth(t *testing.T) {
	cases := []struct {
		n    Node
		want int
	}{
		{Int(1), 0},
		{Array{}, 1},
		{Object{"a": Array{Array{}}}, 3},
		{sample(), 3},
	}
	for _, tt := range cases {
		if got := Depth(tt.n); got != tt.want {
			t.Fatalf("Depth(%#v) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	if (Object{}).Kind().String() != "object" || (Null{}).Kind().String() != "null" {
		t.Fatalf("kind names")
	}
}
