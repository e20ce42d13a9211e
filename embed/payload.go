package embed

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
)

// Field is a JSON object member this package does not interpret.
// Value holds the member's compact JSON encoding.
type Field struct {
	Key   string
	Value json.RawMessage
}

// WritingEmbedData is the payload of a writing embed.
type WritingEmbedData struct {
	// VersionAtEmbed is the plugin version that created the embed. Empty
	// when the payload predates versioning; it is never rewritten.
	VersionAtEmbed string
	// Filepath addresses the backing writing file. Required.
	Filepath string
	// Transcript is a cached transcription. Only persisted when enabled.
	Transcript string
	// Extra holds unknown members in their original order.
	Extra []Field

	version, transcript presence
}

// DrawingEmbedData is the payload of a drawing embed.
type DrawingEmbedData struct {
	VersionAtEmbed string
	Filepath       string
	// Width and Height are the last rendered dimensions, nil when unknown.
	Width  *float64
	Height *float64
	Extra  []Field

	version presence
}

// Dimension returns a pointer to v, for filling Width and Height.
func Dimension(v float64) *float64 { return &v }

// presence records how an optional string member appeared in a decoded
// payload, so an empty or null value is written back instead of dropped.
type presence uint8

const (
	absent presence = iota
	present
	null
)

func presenceOf(m member) presence {
	if isNull(m.value) {
		return null
	}
	return present
}

// optionalString appends key unless it is empty and was absent when decoded.
func optionalString(members []member, key, value string, p presence) []member {
	switch {
	case value != "" || p == present:
		return append(members, stringValue(key, value))
	case p == null:
		return append(members, member{key: key, value: json.RawMessage("null")})
	}
	return members
}

// member is one key/value pair of a top-level payload object.
type member struct {
	key   string
	value json.RawMessage
}

// parseObject reads a JSON object, keeping its members in source order.
// A repeated key keeps its first position and its last value.
func parseObject(kind Kind, body string) ([]member, error) {
	dec := json.NewDecoder(strings.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(kind, "", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, malformed(kind, "", errNotObject)
	}

	var members []member
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(kind, "", err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed(kind, key, err)
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return nil, malformed(kind, key, err)
		}
		value := json.RawMessage(compact.Bytes())

		if i, dup := index[key]; dup {
			members[i].value = value
			continue
		}
		index[key] = len(members)
		members = append(members, member{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, malformed(kind, "", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed(kind, "", errTrailingData)
	}
	return members, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// stringMember decodes a string member. Null reads as absent.
func stringMember(kind Kind, m member) (string, error) {
	if isNull(m.value) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(m.value, &s); err != nil {
		return "", malformed(kind, m.key, errNotString)
	}
	return s, nil
}

// dimensionMember decodes width or height. Null reads as absent.
func dimensionMember(kind Kind, m member) (*float64, error) {
	if isNull(m.value) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(m.value, &v); err != nil {
		return nil, malformed(kind, m.key, errNotNumber)
	}
	if !validDimension(v) {
		return nil, malformed(kind, m.key, errInvalidDimension)
	}
	return &v, nil
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// writeObject renders members the way the host serializes JSON with a tab
// indent: one member per line, nested values re-indented one level deeper.
func writeObject(members []member) string {
	if len(members) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, m := range members {
		b.WriteString("\t")
		b.Write(marshalString(m.key))
		b.WriteString(": ")
		var indented bytes.Buffer
		if err := json.Indent(&indented, m.value, "\t", "\t"); err != nil {
			b.Write(m.value)
		} else {
			b.Write(indented.Bytes())
		}
		if i < len(members)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// marshalString encodes s without HTML escaping, matching the host.
func marshalString(s string) []byte {
	return marshalValue(s)
}

func marshalValue(v any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return []byte("null")
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func stringValue(key, value string) member {
	return member{key: key, value: marshalString(value)}
}

func numberValue(key string, value float64) member {
	return member{key: key, value: marshalValue(value)}
}

func appendExtra(members []member, extra []Field) []member {
	for _, f := range extra {
		value := f.Value
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err == nil {
			value = compact.Bytes()
		}
		members = append(members, member{key: f.Key, value: value})
	}
	return members
}
