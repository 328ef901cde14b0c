package format

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, FieldFixed, Classify("id"))
	assert.Equal(t, FieldFixed, Classify("email"))
	assert.Equal(t, FieldFixed, Classify("mobile"))
	assert.Equal(t, FieldAttribute, Classify("company"))
	assert.Equal(t, FieldAttribute, Classify("Email"))
	assert.Equal(t, "fixed", FieldFixed.String())
	assert.Equal(t, "attribute", FieldAttribute.String())
}

func TestExtractAttributes(t *testing.T) {
	fields := map[string]any{
		"id":      "ignored",
		"email":   "a@b.com",
		"mobile":  "+447700900123",
		"town":    "York",
		"age":     float64(42),
		"ratio":   1.5,
		"vip":     true,
		"count":   json.Number("7"),
		"tags":    []any{"a"},
		"nested":  map[string]any{"x": 1},
		"nothing": nil,
		"cleared": "",
	}

	attrs, invalid := ExtractAttributes(fields)

	assert.Equal(t, []models.Attribute{
		{Name: "age", Value: "42"},
		{Name: "cleared", Value: ""},
		{Name: "count", Value: "7"},
		{Name: "ratio", Value: "1.5"},
		{Name: "town", Value: "York"},
		{Name: "vip", Value: "true"},
	}, attrs)
	assert.Equal(t, []string{"nested", "nothing", "tags"}, invalid)
}

func TestExtractAttributes_Empty(t *testing.T) {
	attrs, invalid := ExtractAttributes(map[string]any{"email": "a@b.com"})
	assert.Empty(t, attrs)
	assert.Empty(t, invalid)
}
