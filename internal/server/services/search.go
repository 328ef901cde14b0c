package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/server/models"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/clients"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/repomanager"
)

// SearchService finds clients by fixed fields and attributes.
type SearchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSearchService(db *sql.DB, m repomanager.RepositoryManager) *SearchService {
	return &SearchService{db: db, repomanager: m}
}

// Search returns the clients matching criteria. Criteria on id and email
// match the client record; mobile criteria are ignored because the stored
// value is ciphertext; any other field matches attributes of that name.
// Attribute matches are ORed. When some attribute matched, an id criterion
// is ignored and only the email criterion narrows the matches. When none
// matched, the id and email criteria are used on their own.
//
// A nil criteria slice yields common.ErrorInvalidCriteria.
func (s *SearchService) Search(ctx context.Context, criteria []models.Criterion, page models.Page) ([]*models.Client, error) {
	if criteria == nil {
		return nil, common.ErrorInvalidCriteria
	}
	if page.Empty() {
		return []*models.Client{}, nil
	}

	var (
		record    clients.Filter
		hasRecord bool
		attrs     []models.AttributeFilter
	)
	for _, c := range criteria {
		switch {
		case c.Field == models.FieldMobile:
			continue
		case c.Field == models.FieldID && c.Query != "":
			record.IDContains = c.Query
			hasRecord = true
		case c.Field == models.FieldEmail && c.Query != "":
			record.EmailContains = c.Query
			hasRecord = true
		default:
			attrs = append(attrs, models.AttributeFilter{Name: c.Field, Query: c.Query})
		}
	}

	var owners []string
	if len(attrs) > 0 {
		var err error
		owners, err = s.repomanager.Attributes(s.db).FindOwners(ctx, attrs)
		if err != nil {
			return nil, err
		}
	}

	var filter clients.Filter
	switch {
	case len(owners) > 0:
		filter = clients.Filter{IDs: owners, EmailContains: record.EmailContains}
	case hasRecord:
		filter = record
	default:
		return []*models.Client{}, nil
	}

	list, err := s.repomanager.Clients(s.db).Find(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if err := reconcileAll(ctx, s.repomanager.Attributes(s.db), list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []*models.Client{}
	}
	return list, nil
}
