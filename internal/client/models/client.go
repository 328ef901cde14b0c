// Package models defines client-side data models used by the myjar CLI.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrIncorrectField = errors.New("field must be name=value")

// Fixed field names; everything else is an attribute.
const (
	FieldID     = "id"
	FieldEmail  = "email"
	FieldMobile = "mobile"
)

// Client is a directory record as returned by the server. Mobile is masked.
type Client struct {
	ID         string
	Email      string
	Mobile     string
	Attributes map[string]string
}

// FromMap builds a Client from the flat field map sent by the server.
func FromMap(m map[string]any) Client {
	c := Client{Attributes: make(map[string]string)}
	for name, v := range m {
		s := fmt.Sprint(v)
		switch name {
		case FieldID:
			c.ID = s
		case FieldEmail:
			c.Email = s
		case FieldMobile:
			c.Mobile = s
		default:
			c.Attributes[name] = s
		}
	}
	return c
}

// String renders the client one field per line, attributes by name.
func (c Client) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n%s: %s\n%s: %s\n", FieldID, c.ID, FieldEmail, c.Email, FieldMobile, c.Mobile)

	names := make([]string, 0, len(c.Attributes))
	for name := range c.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, c.Attributes[name])
	}
	return b.String()
}

// FieldsFromString parses name=value lines. The value may contain '=' and
// may be empty.
func FieldsFromString(lines []string) (map[string]any, error) {
	fields := make(map[string]any, len(lines))
	for _, item := range lines {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ErrIncorrectField
		}
		fields[name] = strings.TrimSpace(value)
	}
	return fields, nil
}

// Criterion is a single search term: Field contains Query.
type Criterion struct {
	Field string
	Query string
}

// CriteriaFromString parses field=query lines.
func CriteriaFromString(lines []string) ([]Criterion, error) {
	fields, err := FieldsFromString(lines)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	criteria := make([]Criterion, 0, len(names))
	for _, name := range names {
		criteria = append(criteria, Criterion{Field: name, Query: fields[name].(string)})
	}
	return criteria, nil
}
