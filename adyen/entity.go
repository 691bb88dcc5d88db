package adyen

import (
	"encoding/json"
	"strconv"
)

// Entity is the keyed-field container every request and response type is
// built from. Each entity kind declares its legal wire field names as a
// fixed, ordered list; construction can optionally filter unknown keys
// against that list. Values are whatever the gateway exchanges: strings,
// numbers, booleans, nested objects or nil.
//
// An Entity is created per call and never shared across calls.
type Entity struct {
	fields []string
	data   map[string]any
}

func newEntity(fields []string) *Entity {
	return &Entity{fields: fields, data: make(map[string]any)}
}

// newFilteredEntity seeds the entity from data, keeping only keys present in
// the declared field list. Unknown keys are silently dropped, not rejected;
// the construction-time filtering depends on that.
func newFilteredEntity(fields []string, data map[string]any) *Entity {
	e := newEntity(fields)
	for _, k := range fields {
		if v, ok := data[k]; ok {
			e.data[k] = v
		}
	}
	return e
}

// Fields returns the declared wire field names of this entity kind, in
// declaration order. Callers must not mutate the returned slice.
func (e *Entity) Fields() []string { return e.fields }

// SetData replaces the data mapping wholesale.
func (e *Entity) SetData(data map[string]any) *Entity {
	e.data = data
	return e
}

// AddData upserts a single key and returns the entity for chaining.
func (e *Entity) AddData(k string, v any) *Entity {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[k] = v
	return e
}

// GetData returns the value stored under k, or nil when unset.
func (e *Entity) GetData(k string) any {
	return e.data[k]
}

// Data returns the whole data mapping.
func (e *Entity) Data() map[string]any {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	return e.data
}

// HasData reports whether k holds a non-nil value.
func (e *Entity) HasData(k string) bool {
	v, ok := e.data[k]
	return ok && v != nil
}

// SetJSONData decodes raw as a JSON object and replaces the data mapping.
// Malformed input fails with a *ParseError instead of leaving the entity in
// a silent empty state.
func (e *Entity) SetJSONData(raw []byte) error {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return &ParseError{Err: err}
	}
	e.data = data
	return nil
}

// JSON renders the data mapping as a canonical JSON object; keys are emitted
// in sorted order. The result is used verbatim as the HTTP request body.
func (e *Entity) JSON() ([]byte, error) {
	return json.Marshal(e.Data())
}

func (e *Entity) String() string {
	b, err := e.JSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// getString reads k as a string, converting scalar values and mapping
// nil/absent to "".
func (e *Entity) getString(k string) string {
	return stringifyField(e.data[k])
}

// getInt reads k as an integer, tolerating the number/string ambiguity of
// decoded JSON. Absent or unparseable values yield 0.
func (e *Entity) getInt(k string) int {
	return intifyField(e.data[k])
}

func intifyField(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// getMap reads k as a nested JSON object. Absent or differently typed
// values yield nil.
func (e *Entity) getMap(k string) map[string]any {
	m, _ := e.data[k].(map[string]any)
	return m
}
