// Package schema drives the generic entity manager. Each managed tab
// (events, members, budget, reports) is described declaratively: field names,
// kinds, required flags, enum values, and defaults. The management service and
// handlers are written once against this description instead of four times
// against concrete types.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a field for coercion and validation.
type Kind int

const (
	String Kind = iota
	Number
	Date
	Enum
	StringList
)

// Field describes a single entity attribute.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Enum lists the accepted values for Kind == Enum. The first value is the
	// default when the field is omitted.
	Enum []string
	// Default is used when the field is omitted and not required. A nil
	// Default falls back to the kind's zero value; Date fields default to the
	// current UTC timestamp.
	Default any
}

// Schema describes one managed tab.
type Schema struct {
	Tab        string
	Collection string
	// Singular names the record in mutation responses ("event", "member", ...).
	Singular  string
	SortField string
	SortDesc  bool
	// UniqueField, when set, is enforced per club on create.
	UniqueField string
	Fields      []Field
}

// ValidationError reports a field-level problem with submitted data.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Normalize validates a create payload against the schema and returns the
// document to persist: required fields checked, values coerced to their kinds,
// omitted optional fields filled with defaults. Unknown keys are dropped so
// clients cannot smuggle arbitrary fields into storage.
func (s *Schema) Normalize(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		raw, present := in[f.Name]
		if !present || isEmpty(raw) {
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Message: "is required"}
			}
			out[f.Name] = f.defaultValue()
			continue
		}
		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// NormalizeUpdate validates a partial update payload: only the submitted
// fields are checked and coerced, nothing is defaulted, and the identifier is
// never updatable.
func (s *Schema) NormalizeUpdate(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for _, f := range s.Fields {
		raw, present := in[f.Name]
		if !present {
			continue
		}
		if isEmpty(raw) {
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Message: "cannot be empty"}
			}
			out[f.Name] = f.defaultValue()
			continue
		}
		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	if len(out) == 0 {
		return nil, &ValidationError{Field: "payload", Message: "no updatable fields provided"}
	}
	return out, nil
}

// FieldNames returns the declared field names in schema order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (f *Field) defaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case Number:
		return float64(0)
	case Date:
		return time.Now().UTC().Format(time.RFC3339)
	case Enum:
		if len(f.Enum) > 0 {
			return f.Enum[0]
		}
		return ""
	case StringList:
		return []string{}
	default:
		return ""
	}
}

func (f *Field) coerce(raw any) (any, error) {
	switch f.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Message: "must be a string"}
		}
		return strings.TrimSpace(s), nil

	case Number:
		n, err := toNumber(raw)
		if err != nil {
			return nil, &ValidationError{Field: f.Name, Message: "must be a number"}
		}
		return n, nil

	case Date:
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, &ValidationError{Field: f.Name, Message: "must be a date string"}
		}
		return strings.TrimSpace(s), nil

	case Enum:
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Message: "must be a string"}
		}
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, &ValidationError{
			Field:   f.Name,
			Message: "must be one of: " + strings.Join(f.Enum, ", "),
		}

	case StringList:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, &ValidationError{Field: f.Name, Message: "must be a list of strings"}
				}
				items = append(items, s)
			}
			return items, nil
		case string:
			// Comma-separated fallback used by form submissions.
			parts := strings.Split(v, ",")
			items := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					items = append(items, p)
				}
			}
			return items, nil
		default:
			return nil, &ValidationError{Field: f.Name, Message: "must be a list of strings"}
		}
	}
	return nil, &ValidationError{Field: f.Name, Message: "unsupported field kind"}
}

// toNumber accepts the shapes a JSON payload or form submission can take:
// native numbers, json.Number, and numeric strings ("150" → 150).
func toNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

func isEmpty(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
