// Package services contains server-side business logic. This file implements
// ClientService, the record store: it keeps the fixed client fields and the
// attribute rows of each client consistent.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/myjar/internal/dbx"
	"github.com/dmitrijs2005/myjar/internal/server/idgen"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/repomanager"
)

// ClientService creates, modifies, deletes and reads clients. Each write runs
// in a single transaction.
type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ids         idgen.Generator
}

// NewClientService constructs a ClientService.
func NewClientService(db *sql.DB, m repomanager.RepositoryManager, ids idgen.Generator) *ClientService {
	return &ClientService{db: db, repomanager: m, ids: ids}
}

// Create stores a new client and its non-empty attributes. mobile must
// already be encrypted. A missing email or mobile yields a
// *common.ValidationError and nothing is written.
func (s *ClientService) Create(ctx context.Context, email, mobile string, attrs []models.Attribute) (*models.Client, error) {
	c := &models.Client{
		ID:     s.ids.Generate(email, mobile),
		Email:  email,
		Mobile: mobile,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		attrRepo := s.repomanager.Attributes(tx)
		for _, a := range attrs {
			if a.Name == "" || a.Value == "" {
				continue
			}
			if err := attrRepo.Upsert(ctx, c.ID, a.Name, a.Value); err != nil {
				return fmt.Errorf("error saving attribute %q: %w", a.Name, err)
			}
		}

		if err := reconcile(ctx, attrRepo, c); err != nil {
			return err
		}

		if err := s.repomanager.Clients(tx).Create(ctx, c); err != nil {
			return fmt.Errorf("error creating client: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Modify applies patch to the client with the given id. Returns
// common.ErrorNotFound when there is no such client.
func (s *ClientService) Modify(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error) {
	var c *models.Client

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		clientRepo := s.repomanager.Clients(tx)
		attrRepo := s.repomanager.Attributes(tx)

		var err error
		c, err = clientRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.Mobile != nil {
			c.Mobile = *patch.Mobile
		}
		if err := c.Validate(); err != nil {
			return err
		}

		for _, a := range patch.Attributes {
			if err := attrRepo.Upsert(ctx, c.ID, a.Name, a.Value); err != nil {
				return fmt.Errorf("error saving attribute %q: %w", a.Name, err)
			}
		}

		if err := reconcile(ctx, attrRepo, c); err != nil {
			return err
		}

		return clientRepo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes a client and all its attributes. Returns
// common.ErrorNotFound when there is no such client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		clientRepo := s.repomanager.Clients(tx)

		if _, err := clientRepo.Get(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.Attributes(tx).DeleteAllByOwner(ctx, id); err != nil {
			return fmt.Errorf("error deleting attributes: %w", err)
		}
		return clientRepo.Delete(ctx, id)
	})
}

// Get returns the client with its attributes, or common.ErrorNotFound.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.repomanager.Clients(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := reconcile(ctx, s.repomanager.Attributes(s.db), c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a page of clients in creation order.
func (s *ClientService) List(ctx context.Context, page models.Page) ([]*models.Client, error) {
	list, err := s.repomanager.Clients(s.db).List(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := reconcileAll(ctx, s.repomanager.Attributes(s.db), list); err != nil {
		return nil, err
	}
	return list, nil
}
