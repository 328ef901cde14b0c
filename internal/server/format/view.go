package format

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/myjar/internal/cryptox"
	"github.com/dmitrijs2005/myjar/internal/server/models"
)

// visibleMobileDigits is how many trailing characters MaskMobile keeps.
const visibleMobileDigits = 4

// Decrypter reverses the at-rest encryption of the mobile number.
type Decrypter interface {
	Decrypt(ciphertext string, enc cryptox.Encoding) (string, error)
}

// PublicView is a client as callers see it: fixed fields plus flattened
// attributes, with the mobile number masked.
type PublicView struct {
	ID         string
	Email      string
	Mobile     string
	Attributes map[string]string
}

// Public builds the view of c. Attributes never overwrite fixed fields.
func Public(c *models.Client, dec Decrypter) (PublicView, error) {
	mobile, err := dec.Decrypt(c.Mobile, cryptox.EncodingHex)
	if err != nil {
		return PublicView{}, err
	}

	v := PublicView{
		ID:         c.ID,
		Email:      c.Email,
		Mobile:     MaskMobile(mobile),
		Attributes: make(map[string]string, len(c.Attributes)),
	}
	for _, a := range c.Attributes {
		if Classify(a.Name) == FieldFixed {
			continue
		}
		if _, seen := v.Attributes[a.Name]; seen {
			continue
		}
		v.Attributes[a.Name] = a.Value
	}
	return v, nil
}

// MaskMobile replaces every ASCII digit before the last four characters
// with '*'. Other characters such as '+' and separators are kept.
func MaskMobile(number string) string {
	n := utf8.RuneCountInString(number)
	if n <= visibleMobileDigits {
		return number
	}

	var b strings.Builder
	i := 0
	for _, r := range number {
		if i < n-visibleMobileDigits && r >= '0' && r <= '9' {
			b.WriteByte('*')
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

// Map returns the flat field map of the view.
func (v PublicView) Map() map[string]any {
	m := make(map[string]any, len(v.Attributes)+3)
	for name, value := range v.Attributes {
		m[name] = value
	}
	m[models.FieldID] = v.ID
	m[models.FieldEmail] = v.Email
	m[models.FieldMobile] = v.Mobile
	return m
}

// MarshalJSON writes the fixed fields first, then attributes by name.
func (v PublicView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(k, val string) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}

	if err := write(models.FieldID, v.ID); err != nil {
		return nil, err
	}
	if err := write(models.FieldEmail, v.Email); err != nil {
		return nil, err
	}
	if err := write(models.FieldMobile, v.Mobile); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(v.Attributes))
	for name := range v.Attributes {
		if Classify(name) == FieldAttribute {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := write(name, v.Attributes[name]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
