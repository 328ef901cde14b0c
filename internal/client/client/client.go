package client

import (
	"context"

	"github.com/dmitrijs2005/myjar/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Create(ctx context.Context, fields map[string]any) (models.Client, error)
	Get(ctx context.Context, id string) (models.Client, error)
	List(ctx context.Context, skip, limit int) ([]models.Client, error)
	Search(ctx context.Context, criteria []models.Criterion, skip, limit int) ([]models.Client, error)
	Modify(ctx context.Context, id string, fields map[string]any) (models.Client, error)
	Delete(ctx context.Context, id string) error
}
