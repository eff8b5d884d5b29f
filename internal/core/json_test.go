package core

import (
	"encoding/json"
	"testing"
)

func TestParseJSONKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{`null`, NullKind},
		{`true`, BoolKind},
		{`-3`, IntKind},
		{`18446744073709551615`, UintKind},
		{`1.5`, DoubleKind},
		{`1e3`, DoubleKind},
		{`"s"`, StringKind},
		{`{}`, ObjectKind},
		{`[]`, ArrayKind},
		{`{"$node":"N"}`, NodeKind},
		{`{"$node":1}`, ObjectKind},
		{`{"$node":"N","$children":{}}`, ObjectKind},
	}
	for _, tt := range tests {
		v, err := ParseJSON([]byte(tt.in))
		if err != nil {
			t.Errorf("ParseJSON(%s) failed: %v", tt.in, err)
			continue
		}
		if v.Kind() != tt.kind {
			t.Errorf("ParseJSON(%s).Kind() = %v, want %v", tt.in, v.Kind(), tt.kind)
		}
	}
}

func TestParseJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,`, `{"a":1} 2`, `nul`} {
		if _, err := ParseJSON([]byte(in)); err == nil {
			t.Errorf("ParseJSON(%q) should fail", in)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"z":1,"a":[true,null,"x"],"m":{"k":-2.5}}`,
		`[1,1.0,18446744073709551615,"<>"]`,
		`{"$node":"Entity","id":3,"$children":[{"$node":"Child","$children":[]}]}`,
		`"quote\"d"`,
	}
	for _, doc := range docs {
		v := MustParseJSON(doc)
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%s) failed: %v", doc, err)
		}
		var back Value
		if err := json.Unmarshal(out, &back); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", out, err)
		}
		if !Equal(v, &back) {
			t.Errorf("round trip of %s gave %s", doc, out)
		}
	}
}

func TestMarshalJSONKeepsOrderAndDoubles(t *testing.T) {
	v := NewObject(M("b", Double(2)), M("a", Double(0.5)))
	if got := v.String(); got != `{"b":2.0,"a":0.5}` {
		t.Errorf("String() = %s", got)
	}
}

func TestReservedMemberKeys(t *testing.T) {
	v := NewObject(
		M("$node", String("n")),
		M("$$children", Int(1)),
		M("$other", Int(2)),
		M("p", NewNode("N").With("$node", Bool(true))),
	)

	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"$$node":"n","$$$children":1,"$other":2,"p":{"$node":"N","$$node":true,"$children":[]}}`
	if string(out) != want {
		t.Errorf("MarshalJSON = %s, want %s", out, want)
	}

	back, err := ParseJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	if back.Kind() != ObjectKind || !Equal(v, back) {
		t.Errorf("JSON round trip gave %s", back)
	}

	y, err := ToYAML(v)
	if err != nil {
		t.Fatal(err)
	}
	if back, err = ParseYAML(y); err != nil {
		t.Fatal(err)
	}
	if back.Kind() != ObjectKind || !Equal(v, back) {
		t.Errorf("YAML round trip gave %s from\n%s", back, y)
	}

	if back, err = FromGo(v.Interface()); err != nil {
		t.Fatal(err)
	}
	if back.Kind() != ObjectKind || !Equal(v, back) {
		t.Errorf("Go round trip gave %s", back)
	}
}
