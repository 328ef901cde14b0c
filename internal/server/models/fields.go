package models

// Fixed client field names. They are reserved and never stored as
// attributes.
const (
	FieldID     = "id"
	FieldEmail  = "email"
	FieldMobile = "mobile"
)

// IsFixedField reports whether name is one of the fixed client fields.
func IsFixedField(name string) bool {
	switch name {
	case FieldID, FieldEmail, FieldMobile:
		return true
	}
	return false
}
