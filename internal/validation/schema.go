// Package validation checks untyped request payloads against declarative
// per-entity schemas before anything touches the store. A schema is a plain
// value (field name -> kind, required, default, enum set, range) interpreted
// by one generic routine, so the rules stay unit-testable away from
// persistence.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the wire type a field must arrive as.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	UUID
	List
	Object
)

// Field describes one payload field.
type Field struct {
	Kind     Kind
	Required bool
	Default  interface{}
	Enum     []string
	Min      *float64
	Max      *float64
	MinLen   int
	Email    bool
	// Column is the store column written on partial updates.
	Column string
}

// Schema is the full field set for one entity kind.
type Schema struct {
	Entity string
	Fields map[string]Field
}

// Normalized is a validated record ready for persistence. Values are typed:
// string, int, float64, bool, time.Time, uuid.UUID, []string or
// map[string]interface{}. A nil value means an explicit null.
type Normalized map[string]interface{}

func (n Normalized) Has(key string) bool {
	_, ok := n[key]
	return ok
}

func (n Normalized) IsNull(key string) bool {
	v, ok := n[key]
	return ok && v == nil
}

func (n Normalized) String(key string) string {
	if v, ok := n[key].(string); ok {
		return v
	}
	return ""
}

func (n Normalized) Int(key string) int {
	if v, ok := n[key].(int); ok {
		return v
	}
	return 0
}

func (n Normalized) Float(key string) float64 {
	if v, ok := n[key].(float64); ok {
		return v
	}
	return 0
}

func (n Normalized) Bool(key string) bool {
	if v, ok := n[key].(bool); ok {
		return v
	}
	return false
}

func (n Normalized) Time(key string) (time.Time, bool) {
	v, ok := n[key].(time.Time)
	return v, ok
}

func (n Normalized) UUID(key string) (uuid.UUID, bool) {
	v, ok := n[key].(uuid.UUID)
	return v, ok
}

func (n Normalized) List(key string) []string {
	if v, ok := n[key].([]string); ok {
		return v
	}
	return nil
}

func (n Normalized) Object(key string) map[string]interface{} {
	if v, ok := n[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// Violations collects every violated field; callers turn a non-empty set
// into a domain validation error.
type Violations []Violation

type Violation struct {
	Field  string
	Reason string
}

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return strings.Join(parts, "; ")
}

// Apply validates a payload against the schema. With partial set, every
// field is optional and defaults are not filled: only supplied fields are
// validated, matching partial-update semantics. Every violated field is
// reported, not just the first.
func (s Schema) Apply(payload map[string]interface{}, partial bool) (Normalized, Violations) {
	var violations Violations
	out := make(Normalized, len(payload))

	for key := range payload {
		if _, ok := s.Fields[key]; !ok {
			violations = append(violations, Violation{Field: key, Reason: "unknown field"})
		}
	}

	for name, field := range s.Fields {
		raw, present := payload[name]
		if !present {
			if partial {
				continue
			}
			if field.Required {
				violations = append(violations, Violation{Field: name, Reason: "is required"})
				continue
			}
			if field.Default != nil {
				out[name] = field.Default
			}
			continue
		}

		// Explicit null clears an optional field; required fields may not
		// be nulled even on partial updates.
		if raw == nil {
			if field.Required {
				violations = append(violations, Violation{Field: name, Reason: "must not be null"})
				continue
			}
			out[name] = nil
			continue
		}

		value, reason := field.normalize(raw)
		if reason != "" {
			violations = append(violations, Violation{Field: name, Reason: reason})
			continue
		}
		out[name] = value
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

func (f Field) normalize(raw interface{}) (interface{}, string) {
	switch f.Kind {
	case String:
		v, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if f.Required && v == "" {
			return nil, "must not be empty"
		}
		if f.MinLen > 0 && len(v) < f.MinLen {
			return nil, fmt.Sprintf("must be at least %d characters", f.MinLen)
		}
		if f.Email && !looksLikeEmail(v) {
			return nil, "must be a valid email address"
		}
		if len(f.Enum) > 0 && !contains(f.Enum, v) {
			return nil, fmt.Sprintf("must be one of %s", strings.Join(f.Enum, ", "))
		}
		return v, ""

	case Int:
		// JSON numbers arrive as float64; strings are rejected, never
		// coerced.
		v, ok := raw.(float64)
		if !ok {
			return nil, "must be a number"
		}
		if v != float64(int(v)) {
			return nil, "must be an integer"
		}
		if reason := f.checkRange(v); reason != "" {
			return nil, reason
		}
		return int(v), ""

	case Float:
		v, ok := raw.(float64)
		if !ok {
			return nil, "must be a number"
		}
		if reason := f.checkRange(v); reason != "" {
			return nil, reason
		}
		return v, ""

	case Bool:
		v, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return v, ""

	case Time:
		switch v := raw.(type) {
		case time.Time:
			return v, ""
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, "must be an RFC3339 timestamp"
			}
			return t, ""
		default:
			return nil, "must be an RFC3339 timestamp"
		}

	case UUID:
		v, ok := raw.(string)
		if !ok {
			return nil, "must be a string id"
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, "must be a valid id"
		}
		return id, ""

	case List:
		switch v := raw.(type) {
		case []interface{}:
			items := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, "must be a list of strings"
				}
				items = append(items, s)
			}
			if f.Required && len(items) == 0 {
				return nil, "must not be empty"
			}
			return items, ""
		case string:
			// Flat comma-separated strings are the legacy contract and
			// are normalized into a list.
			if f.Required && v == "" {
				return nil, "must not be empty"
			}
			return splitList(v), ""
		default:
			return nil, "must be a list of strings"
		}

	case Object:
		v, ok := raw.(map[string]interface{})
		if !ok {
			return nil, "must be an object"
		}
		return v, ""
	}

	return nil, "unsupported field kind"
}

func (f Field) checkRange(v float64) string {
	if f.Min != nil && v < *f.Min {
		return fmt.Sprintf("must be at least %g", *f.Min)
	}
	if f.Max != nil && v > *f.Max {
		return fmt.Sprintf("must be at most %g", *f.Max)
	}
	return ""
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}

func minOf(v float64) *float64 { return &v }
func maxOf(v float64) *float64 { return &v }
