package core

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"scalars", `1`, `1`, true},
		{"different numbers", `1`, `2`, false},
		{"int vs double", `1`, `1.0`, false},
		{"strings", `"a"`, `"a"`, true},
		{"null vs false", `null`, `false`, false},
		{"member order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"missing member", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"element order matters", `[1,2]`, `[2,1]`, false},
		{"nested", `{"a":[{"b":null}]}`, `{"a":[{"b":null}]}`, true},
		{"nested difference", `{"a":[{"b":null}]}`, `{"a":[{"b":0}]}`, false},
		{"object vs array", `{}`, `[]`, false},
		{"nodes", `{"$node":"N","x":1,"$children":[1]}`, `{"$node":"N","x":1,"$children":[1]}`, true},
		{"node names", `{"$node":"N","$children":[]}`, `{"$node":"M","$children":[]}`, false},
		{"node children", `{"$node":"N","$children":[1]}`, `{"$node":"N","$children":[2]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustParseJSON(tt.a), MustParseJSON(tt.b)
			if got := Equal(a, b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := b.Equal(a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestEqualNilAndSelf(t *testing.T) {
	v := MustParseJSON(`{"a":[1,2]}`)
	if !Equal(v, v) {
		t.Errorf("a value must equal itself")
	}
	if !Equal(nil, Null()) {
		t.Errorf("nil must equal null")
	}
}

func TestEqualIgnorePath(t *testing.T) {
	a := MustParseJSON(`{"meta":{"rev":1},"items":[{"id":1,"ts":5}]}`)
	b := MustParseJSON(`{"meta":{"rev":2},"items":[{"id":1,"ts":9}]}`)

	if Equal(a, b) {
		t.Fatalf("values should differ")
	}
	if Equal(a, b, EqualIgnorePath(MustParsePath("/meta/rev"))) {
		t.Errorf("values should still differ on /items/0/ts")
	}
	if !Equal(a, b,
		EqualIgnorePath(MustParsePath("/meta/rev")),
		EqualIgnorePath(MustParsePath("/items/0/ts"))) {
		t.Errorf("values should be equal when both differences are ignored")
	}
}

func TestEqualIntegers(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"int and uint", Int(5), Uint(5), true},
		{"zero", Int(0), Uint(0), true},
		{"negative int", Int(-1), Uint(18446744073709551615), false},
		{"different values", Int(5), Uint(6), false},
		{"uint and double", Uint(1), Double(1), false},
		{"nested", NewArray(Int(1)), NewArray(Uint(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
