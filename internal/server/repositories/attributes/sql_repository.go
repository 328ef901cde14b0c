package attributes

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myjar/internal/dbx"
	"github.com/dmitrijs2005/myjar/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Attribute, error) {
	query := `SELECT client_id, name, value FROM attributes WHERE client_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, dbx.Rebind(r.dialect, query), ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Attribute
	for rows.Next() {
		var a models.Attribute
		if err := rows.Scan(&a.ClientID, &a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, ownerID, name, value string) error {
	if name == "" {
		return nil
	}

	if value == "" {
		query := `DELETE FROM attributes WHERE client_id = ? AND name = ?`
		if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), ownerID, name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	}

	query := `INSERT INTO attributes (client_id, name, value) VALUES (?, ?, ?)
		ON CONFLICT (client_id, name) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), ownerID, name, value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteAllByOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM attributes WHERE client_id = ?`

	if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) FindOwners(ctx context.Context, filters []models.AttributeFilter) ([]string, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, 2*len(filters))
	for _, f := range filters {
		clauses = append(clauses, "(name = ? AND "+dbx.ContainsCI("value")+")")
		args = append(args, f.Name, dbx.EscapeLike(f.Query))
	}

	query := `SELECT DISTINCT client_id FROM attributes WHERE ` +
		strings.Join(clauses, " OR ") + ` ORDER BY client_id`

	rows, err := r.db.QueryContext(ctx, dbx.Rebind(r.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		owners = append(owners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return owners, nil
}
