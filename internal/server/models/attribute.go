package models

// Attribute is a named value owned by a client. At most one exists per
// (ClientID, Name).
type Attribute struct {
	ClientID string
	Name     string
	Value    string
}

// AttributeFilter matches attributes named Name whose value contains Query,
// ignoring case.
type AttributeFilter struct {
	Name  string
	Query string
}
