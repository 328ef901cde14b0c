// Package format converts between stored clients and the shape callers see,
// and validates the contact fields callers send.
package format

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/myjar/internal/server/models"
)

// FieldKind tells fixed client fields from caller-defined attributes.
type FieldKind int

const (
	FieldAttribute FieldKind = iota
	FieldFixed
)

func (k FieldKind) String() string {
	if k == FieldFixed {
		return "fixed"
	}
	return "attribute"
}

// Classify returns the kind of a request field name.
func Classify(name string) FieldKind {
	if models.IsFixedField(name) {
		return FieldFixed
	}
	return FieldAttribute
}

// ExtractAttributes turns every attribute-kind entry of fields into an
// Attribute, ordered by name. Values must be strings, numbers or booleans;
// the names of other entries are returned as invalid.
func ExtractAttributes(fields map[string]any) ([]models.Attribute, []string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if Classify(name) == FieldAttribute {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var (
		attrs   []models.Attribute
		invalid []string
	)
	for _, name := range names {
		value, ok := scalarString(fields[name])
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		attrs = append(attrs, models.Attribute{Name: name, Value: value})
	}
	return attrs, invalid
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}
