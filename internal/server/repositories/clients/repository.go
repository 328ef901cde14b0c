// Package clients stores the fixed fields of directory records.
package clients

import (
	"context"

	"github.com/dmitrijs2005/myjar/internal/server/models"
)

// Filter selects clients. Set conditions are ANDed; an empty Filter
// matches every client.
type Filter struct {
	// IDs, when non-nil, restricts the result to these ids.
	IDs []string
	// IDContains and EmailContains are case-insensitive substring matches.
	IDContains    string
	EmailContains string
}

// Repository persists clients without their attributes. Results are
// ordered by creation. A page with a zero limit yields no clients.
type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context, page models.Page) ([]*models.Client, error)
	Find(ctx context.Context, f Filter, page models.Page) ([]*models.Client, error)
}
