package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/attributes"
)

// reconcile replaces c.Attributes with what the attribute store holds.
func reconcile(ctx context.Context, repo attributes.Repository, c *models.Client) error {
	attrs, err := repo.ListByOwner(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("error loading attributes: %w", err)
	}
	if attrs == nil {
		attrs = []models.Attribute{}
	}
	c.Attributes = attrs
	return nil
}

func reconcileAll(ctx context.Context, repo attributes.Repository, list []*models.Client) error {
	for _, c := range list {
		if err := reconcile(ctx, repo, c); err != nil {
			return err
		}
	}
	return nil
}
