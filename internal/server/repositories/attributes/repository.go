// Package attributes stores the open-ended name/value pairs attached to
// clients. Rows are keyed by (client_id, name); ownership is by convention,
// there is no foreign key to clients.
package attributes

import (
	"context"

	"github.com/dmitrijs2005/myjar/internal/server/models"
)

type Repository interface {
	// ListByOwner returns the attributes of ownerID ordered by name.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Attribute, error)
	// Upsert inserts or overwrites an attribute. An empty value deletes it.
	Upsert(ctx context.Context, ownerID, name, value string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) error
	// FindOwners returns the distinct owners having an attribute that
	// matches any of filters.
	FindOwners(ctx context.Context, filters []models.AttributeFilter) ([]string, error)
}
