package engine

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"testing"

	"github.com/brunoga/dom/internal/core"
)

func TestOperationDomRepresentation(t *testing.T) {
	tests := []struct {
		op   PatchOperation
		want string
	}{
		{AddOperation(path("/a/0"), doc(`{"x":[1]}`)), `{"op":"add","path":"/a/0","value":{"x":[1]}}`},
		{RemoveOperation(path("/a/-")), `{"op":"remove","path":"/a/-"}`},
		{ReplaceOperation(path(""), doc(`null`)), `{"op":"replace","path":"","value":null}`},
		{CopyOperation(path("/b"), path("/a")), `{"op":"copy","path":"/b","from":"/a"}`},
		{MoveOperation(path("/a~1b"), path("/c~0")), `{"op":"move","path":"/a~1b","from":"/c~0"}`},
		{TestOperation(path("/t"), doc(`1.5`)), `{"op":"test","path":"/t","value":1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.op.Type().String(), func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			back, err := CreateOperationFromDomRepresentation(tt.op.DomRepresentation())
			if err != nil {
				t.Fatalf("CreateOperationFromDomRepresentation failed: %v", err)
			}
			if !back.Equal(tt.op) {
				t.Errorf("round trip gave %s, want %s", back, tt.op)
			}
		})
	}
}

func TestCreateOperationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an object", `["add"]`},
		{"missing op", `{"path":"/a","value":1}`},
		{"op not a string", `{"op":1,"path":"/a"}`},
		{"unknown op", `{"op":"merge","path":"/a"}`},
		{"missing path", `{"op":"remove"}`},
		{"path not a string", `{"op":"remove","path":["a"]}`},
		{"malformed path", `{"op":"remove","path":"a"}`},
		{"misplaced end of array", `{"op":"remove","path":"/-/a"}`},
		{"missing value", `{"op":"add","path":"/a"}`},
		{"missing from", `{"op":"move","path":"/a"}`},
		{"from not a string", `{"op":"copy","path":"/a","from":null}`},
		{"malformed from", `{"op":"copy","path":"/a","from":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateOperationFromDomRepresentation(doc(tt.in))
			if !errors.Is(err, ErrInvalidOperation) {
				t.Errorf("error = %v, want ErrInvalidOperation", err)
			}
		})
	}
}

func TestCreateOperationMalformedPath(t *testing.T) {
	_, err := CreateOperationFromDomRepresentation(doc(`{"op":"remove","path":"/a~2"}`))
	if !errors.Is(err, ErrInvalidOperation) || !errors.Is(err, ErrMalformedPath) {
		t.Errorf("error = %v, want both ErrInvalidOperation and ErrMalformedPath", err)
	}
}

func TestCreateOperationIgnoresUnknownFields(t *testing.T) {
	op, err := CreateOperationFromDomRepresentation(doc(`{"op":"remove","path":"/a","value":1,"note":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !op.Equal(RemoveOperation(path("/a"))) {
		t.Errorf("got %s", op)
	}
}

func TestPatchDomRepresentation(t *testing.T) {
	p := NewPatch(
		AddOperation(path("/a"), doc(`1`)),
		MoveOperation(path("/b"), path("/a")),
	)
	want := `[{"op":"add","path":"/a","value":1},{"op":"move","path":"/b","from":"/a"}]`
	if got := p.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	back, err := CreatePatchFromDomRepresentation(p.DomRepresentation())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Errorf("round trip gave %s", back)
	}

	if _, err := CreatePatchFromDomRepresentation(doc(`{}`)); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("object error = %v", err)
	}
	if _, err := CreatePatchFromDomRepresentation(doc(`[{"op":"remove","path":"/a"},{"op":"nope","path":""}]`)); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("bad element error = %v", err)
	}
}

func TestPatchJSON(t *testing.T) {
	p := NewPatch(
		TestOperation(path("/a"), doc(`{"z":1,"a":2}`)),
		ReplaceOperation(path("/a/z"), doc(`[true,"s"]`)),
	)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"test","path":"/a","value":{"z":1,"a":2}},{"op":"replace","path":"/a/z","value":[true,"s"]}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Patch
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Errorf("Unmarshal = %s", back)
	}

	var op PatchOperation
	if err := json.Unmarshal([]byte(`{"op":"copy","path":"/x","from":"/y"}`), &op); err != nil {
		t.Fatal(err)
	}
	if !op.Equal(CopyOperation(path("/x"), path("/y"))) {
		t.Errorf("Unmarshal operation = %s", op)
	}
	if err := json.Unmarshal([]byte(`{"op":"copy","path":"/x"}`), &op); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("error = %v, want ErrInvalidOperation", err)
	}
}

// reservedPatch carries values whose JSON form could be read back as a
// different kind.
func reservedPatch() Patch {
	return NewPatch(
		AddOperation(path("/a"), core.Uint(5)),
		AddOperation(path("/b"), core.NewObject(core.M("$node", core.String("n")))),
		TestOperation(path("/c"), core.NewObject(core.M("$$children", core.Int(1)))),
	)
}

func checkReservedPatch(t *testing.T, back Patch) {
	t.Helper()
	want := reservedPatch()
	if !back.Equal(want) {
		t.Fatalf("round trip gave %s, want %s", back, want)
	}
	if kind := back.At(1).Value().Kind(); kind != core.ObjectKind {
		t.Errorf("object with a $node member came back as %s", kind)
	}
	if _, ok := back.At(2).Value().FindMember("$$children"); !ok {
		t.Errorf("member $$children lost: %s", back.At(2).Value())
	}
	root := core.NewObject(core.M("a", core.Uint(5)))
	if err := TestOperation(path("/a"), back.At(0).Value()).ApplyInPlace(root); err != nil {
		t.Errorf("decoded value does not test equal to the original: %v", err)
	}
}

func TestPatchJSONReservedValues(t *testing.T) {
	data, err := json.Marshal(reservedPatch())
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"add","path":"/a","value":5},{"op":"add","path":"/b","value":{"$$node":"n"}},{"op":"test","path":"/c","value":{"$$$children":1}}]`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Patch
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	checkReservedPatch(t, back)
}

func TestPatchGobReservedValues(t *testing.T) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(reservedPatch()); err != nil {
		t.Fatal(err)
	}
	var back Patch
	if err := gob.NewDecoder(&buf).Decode(&back); err != nil {
		t.Fatal(err)
	}
	checkReservedPatch(t, back)
}

func TestPatchGob(t *testing.T) {
	p := NewPatch(
		AddOperation(path("/list/-"), doc(`{"id":7}`)),
		RemoveOperation(path("/old")),
	)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		t.Fatal(err)
	}
	var back Patch
	if err := gob.NewDecoder(&buf).Decode(&back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p) {
		t.Errorf("gob round trip gave %s", back)
	}
}
