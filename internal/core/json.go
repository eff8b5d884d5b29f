package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseJSON decodes a JSON document keeping the order of object members.
// Integers decode as Int (or Uint when they do not fit an int64) and every
// other number as Double. Objects carrying the reserved node keys decode as
// nodes.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("unexpected data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

// MustParseJSON is like ParseJSON but panics on error.
func MustParseJSON(s string) *Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return numberFromString(string(t))
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.SetMember(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return nodeFromObject(obj), nil
		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.ArrayPushBack(val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Members are written in order and
// nodes use the reserved node keys.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v *Value) error {
	switch v.Kind() {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case IntKind:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case UintKind:
		buf.WriteString(strconv.FormatUint(v.u, 10))
	case DoubleKind:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("unsupported number %v", v.f)
		}
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			// Keep the value a double when it is read back.
			s += ".0"
		}
		buf.WriteString(s)
	case StringKind:
		encodeString(buf, v.s)
	case ObjectKind:
		buf.WriteByte('{')
		if err := encodeMembers(buf, v.members, false); err != nil {
			return err
		}
		buf.WriteByte('}')
	case ArrayKind:
		if err := encodeElements(buf, v.elems); err != nil {
			return err
		}
	case NodeKind:
		buf.WriteByte('{')
		encodeString(buf, NodeNameKey)
		buf.WriteByte(':')
		encodeString(buf, v.s)
		if err := encodeMembers(buf, v.members, true); err != nil {
			return err
		}
		buf.WriteByte(',')
		encodeString(buf, NodeChildrenKey)
		buf.WriteByte(':')
		if err := encodeElements(buf, v.elems); err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	return nil
}

func encodeMembers(buf *bytes.Buffer, members []Member, leadingComma bool) error {
	for i, m := range members {
		if i > 0 || leadingComma {
			buf.WriteByte(',')
		}
		encodeString(buf, WireKey(m.Key))
		buf.WriteByte(':')
		if err := encodeValue(buf, m.Value); err != nil {
			return err
		}
	}
	return nil
}

func encodeElements(buf *bytes.Buffer, elems []*Value) error {
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, e); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeString(buf *bytes.Buffer, s string) {
	// Marshalling a string never fails.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
