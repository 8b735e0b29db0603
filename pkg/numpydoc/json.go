package numpydoc

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/nieomylnieja/numpydoc/pkg/typeexpr"
)

// UnmarshalJSON decodes an object, keeping the order of its keys.
// A null value stands for an entry without text.
func (e *Entries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "failed to decode entries")
	}
	if tok == nil {
		*e = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("entries must be an object, got %v", tok)
	}
	entries := Entries{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return errors.Wrap(err, "failed to decode entry name")
		}
		name := tok.(string)
		var text *string
		if err = dec.Decode(&text); err != nil {
			return errors.Wrapf(err, "failed to decode text of entry %q", name)
		}
		entry := Entry{Name: name}
		if text != nil {
			entry.Text = *text
		}
		entries = append(entries, entry)
	}
	if _, err = dec.Token(); err != nil {
		return errors.Wrap(err, "failed to decode entries")
	}
	*e = entries
	return nil
}

// MarshalJSON encodes entries as an object, keeping their order.
func (e Entries) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		text, err := json.Marshal(entry.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes [Auto] as true.
func (Auto) MarshalJSON() ([]byte, error) {
	return []byte("true"), nil
}

// decodePayload maps the JSON shapes onto [Payload] variants:
//
//	"text"          -> Text
//	{"name": "..."} -> Entries
//	["a", "b"]      -> List
//	true            -> Auto
//
// null and false mean an absent payload. Any other shape decodes to
// an invalid payload rejected by [Compile].
func decodePayload(data json.RawMessage) (Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	switch data[0] {
	case 'n', 'f':
		var b *bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, errors.Wrap(err, "failed to decode payload")
		}
		return nil, nil
	case 't':
		return Auto{}, nil
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, errors.Wrap(err, "failed to decode payload")
		}
		return Text(text), nil
	case '{':
		var entries Entries
		if err := json.Unmarshal(data, &entries); err != nil {
			return invalidPayload{shape: "object with non-string values"}, nil
		}
		return entries, nil
	case '[':
		var list List
		if err := json.Unmarshal(data, &list); err != nil {
			return invalidPayload{shape: "array with non-string elements"}, nil
		}
		return list, nil
	default:
		return invalidPayload{shape: "number"}, nil
	}
}

// UnmarshalJSON decodes the request, mapping payload fields onto [Payload] variants.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var wire struct {
		plain
		Returns  json.RawMessage `json:"returns"`
		Yields   json.RawMessage `json:"yields"`
		Receives json.RawMessage `json:"receives"`
		SeeAlso  json.RawMessage `json:"seeAlso"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode request")
	}
	req := Request(wire.plain)
	for _, field := range []struct {
		name string
		raw  json.RawMessage
		dst  *Payload
	}{
		{"returns", wire.Returns, &req.Returns},
		{"yields", wire.Yields, &req.Yields},
		{"receives", wire.Receives, &req.Receives},
		{"seeAlso", wire.SeeAlso, &req.SeeAlso},
	} {
		payload, err := decodePayload(field.raw)
		if err != nil {
			return errors.Wrapf(err, "failed to decode %s", field.name)
		}
		*field.dst = payload
	}
	*r = req
	return nil
}

// UnmarshalJSON decodes the signature, see [typeexpr.Decode] for the type format.
func (s *Signature) UnmarshalJSON(data []byte) error {
	type plain Signature
	var wire struct {
		plain
		Return json.RawMessage `json:"return"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode signature")
	}
	sig := Signature(wire.plain)
	ret, err := typeexpr.Decode(wire.Return)
	if err != nil {
		return errors.Wrap(err, "failed to decode return type")
	}
	sig.Return = ret
	*s = sig
	return nil
}

// UnmarshalJSON decodes the parameter.
// The presence of the "default" key implies HasDefault, even if its value is null.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	type plain Parameter
	var wire struct {
		plain
		Type    json.RawMessage `json:"type"`
		Default json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode parameter")
	}
	param := Parameter(wire.plain)
	typ, err := typeexpr.Decode(wire.Type)
	if err != nil {
		return errors.Wrapf(err, "failed to decode type of parameter %s", param.Name)
	}
	param.Type = typ
	if len(wire.Default) > 0 {
		param.HasDefault = true
		if param.Default, err = typeexpr.DecodeValue(wire.Default); err != nil {
			return errors.Wrapf(err, "failed to decode default of parameter %s", param.Name)
		}
	}
	*p = param
	return nil
}

// UnmarshalJSON decodes the member, its value must be a scalar.
// A member without a value decodes to nil.
func (m *Member) UnmarshalJSON(data []byte) error {
	type plain Member
	var wire struct {
		plain
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "failed to decode member")
	}
	member := Member(wire.plain)
	if len(wire.Value) > 0 {
		value, err := typeexpr.DecodeValue(wire.Value)
		if err != nil {
			return errors.Wrapf(err, "failed to decode value of member %s", member.Name)
		}
		member.Value = value
	}
	*m = member
	return nil
}
