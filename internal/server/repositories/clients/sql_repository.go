package clients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myjar/internal/common"
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

func (r *SQLRepository) Create(ctx context.Context, c *models.Client) error {
	query := `INSERT INTO clients (id, email, mobile) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), c.ID, c.Email, c.Mobile); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, c *models.Client) error {
	query := `UPDATE clients SET email = ?, mobile = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), c.Email, c.Mobile, c.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = ?`

	res, err := r.db.ExecContext(ctx, dbx.Rebind(r.dialect, query), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	query := `SELECT id, email, mobile FROM clients WHERE id = ?`

	c := &models.Client{}
	err := r.db.QueryRowContext(ctx, dbx.Rebind(r.dialect, query), id).Scan(&c.ID, &c.Email, &c.Mobile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *SQLRepository) List(ctx context.Context, page models.Page) ([]*models.Client, error) {
	return r.Find(ctx, Filter{}, page)
}

func (r *SQLRepository) Find(ctx context.Context, f Filter, page models.Page) ([]*models.Client, error) {
	if page.Empty() {
		return []*models.Client{}, nil
	}
	if f.IDs != nil && len(f.IDs) == 0 {
		return nil, nil
	}

	var (
		conds []string
		args  []any
	)
	if len(f.IDs) > 0 {
		conds = append(conds, "id IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(f.IDs)), ", ")+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}
	if f.IDContains != "" {
		conds = append(conds, dbx.ContainsCI("id"))
		args = append(args, dbx.EscapeLike(f.IDContains))
	}
	if f.EmailContains != "" {
		conds = append(conds, dbx.ContainsCI("email"))
		args = append(args, dbx.EscapeLike(f.EmailContains))
	}

	query := `SELECT id, email, mobile FROM clients`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY seq`

	tail, pargs := dbx.Paginate(r.dialect, page.Skip, page.Limit)
	query += tail
	args = append(args, pargs...)

	rows, err := r.db.QueryContext(ctx, dbx.Rebind(r.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Client
	for rows.Next() {
		c := &models.Client{}
		if err := rows.Scan(&c.ID, &c.Email, &c.Mobile); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
