// Package models defines server-side data models persisted in the database.
package models

import "github.com/dmitrijs2005/myjar/internal/common"

// Client is a directory record. Mobile holds ciphertext; Attributes are
// loaded from the attribute store and never stored inline.
type Client struct {
	ID         string
	Email      string
	Mobile     string
	Attributes []Attribute
}

// Validate mirrors the storage-level required constraints.
func (c *Client) Validate() error {
	verr := &common.ValidationError{}
	if c.ID == "" {
		verr.Missing = append(verr.Missing, "id")
	}
	if c.Email == "" {
		verr.Missing = append(verr.Missing, "email")
	}
	if c.Mobile == "" {
		verr.Missing = append(verr.Missing, "mobile")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// ClientPatch is a partial update. Nil pointers leave the field untouched.
// Attributes with an empty Value are removed.
type ClientPatch struct {
	Email      *string
	Mobile     *string
	Attributes []Attribute
}
