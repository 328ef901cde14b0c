// Package directory is the boundary of the client directory. It validates
// caller fields, encrypts the mobile number and returns public views; the
// storage work is delegated to the record store and the search engine.
package directory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/myjar/internal/common"
	"github.com/dmitrijs2005/myjar/internal/cryptox"
	"github.com/dmitrijs2005/myjar/internal/logging"
	"github.com/dmitrijs2005/myjar/internal/server/format"
	"github.com/dmitrijs2005/myjar/internal/server/models"
)

// ClientStore persists clients and their attributes.
type ClientStore interface {
	Create(ctx context.Context, email, mobile string, attrs []models.Attribute) (*models.Client, error)
	Modify(ctx context.Context, id string, patch models.ClientPatch) (*models.Client, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Client, error)
	List(ctx context.Context, page models.Page) ([]*models.Client, error)
}

// Searcher finds clients by field substrings.
type Searcher interface {
	Search(ctx context.Context, criteria []models.Criterion, page models.Page) ([]*models.Client, error)
}

// ContactValidator checks and normalizes the contact fields.
type ContactValidator interface {
	ValidateEmail(email string) bool
	NormalizeMobile(ctx context.Context, number string) (string, bool)
}

// Cipher encrypts the mobile number at rest.
type Cipher interface {
	Encrypt(plaintext string, enc cryptox.Encoding) (string, error)
	format.Decrypter
}

// Recorder counts directory writes.
type Recorder interface {
	IncrementClientsCreated()
	IncrementClientsDeleted()
}

type nopRecorder struct{}

func (nopRecorder) IncrementClientsCreated() {}
func (nopRecorder) IncrementClientsDeleted() {}

// Directory ties validation, encryption and storage together.
type Directory struct {
	store     ClientStore
	searcher  Searcher
	validator ContactValidator
	cipher    Cipher
	recorder  Recorder
	logger    logging.Logger
}

// New constructs a Directory. recorder may be nil.
func New(store ClientStore, searcher Searcher, validator ContactValidator, cipher Cipher, recorder Recorder, logger logging.Logger) *Directory {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Directory{
		store:     store,
		searcher:  searcher,
		validator: validator,
		cipher:    cipher,
		recorder:  recorder,
		logger:    logger.With("module", "directory"),
	}
}

// Create validates fields and stores a new client. Absent contact fields
// are reported before malformed ones; nothing is written on failure.
func (d *Directory) Create(ctx context.Context, fields map[string]any) (format.PublicView, error) {
	verr := &common.ValidationError{}
	for _, name := range []string{models.FieldEmail, models.FieldMobile} {
		if _, ok := fields[name]; !ok {
			verr.Missing = append(verr.Missing, name)
		}
	}
	if !verr.Empty() {
		return format.PublicView{}, verr
	}

	email, mobile, verr := d.checkContact(ctx, fields)
	if !verr.Empty() {
		return format.PublicView{}, verr
	}

	attrs, invalid := format.ExtractAttributes(fields)
	if len(invalid) > 0 {
		return format.PublicView{}, &common.ValidationError{Invalid: invalid}
	}

	sealed, err := d.cipher.Encrypt(*mobile, cryptox.EncodingHex)
	if err != nil {
		return format.PublicView{}, fmt.Errorf("encrypt mobile: %w", err)
	}

	c, err := d.store.Create(ctx, *email, sealed, attrs)
	if err != nil {
		return format.PublicView{}, err
	}
	d.recorder.IncrementClientsCreated()
	d.logger.Info(ctx, "client created", "id", c.ID)

	return format.Public(c, d.cipher)
}

// Get returns the client with the given id.
func (d *Directory) Get(ctx context.Context, id string) (format.PublicView, error) {
	c, err := d.store.Get(ctx, id)
	if err != nil {
		return format.PublicView{}, err
	}
	return format.Public(c, d.cipher)
}

// List returns a page of clients in creation order.
func (d *Directory) List(ctx context.Context, page models.Page) ([]format.PublicView, error) {
	clients, err := d.store.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return d.views(clients)
}

// Search returns a page of clients matching criteria.
func (d *Directory) Search(ctx context.Context, criteria []models.Criterion, page models.Page) ([]format.PublicView, error) {
	clients, err := d.searcher.Search(ctx, criteria, page)
	if err != nil {
		return nil, err
	}
	return d.views(clients)
}

// Modify updates the fields present in fields. An attribute set to the
// empty string is removed. Returns common.ErrorNotFound for unknown ids.
func (d *Directory) Modify(ctx context.Context, id string, fields map[string]any) (format.PublicView, error) {
	email, mobile, verr := d.checkContact(ctx, fields)
	attrs, invalid := format.ExtractAttributes(fields)
	verr.Invalid = append(verr.Invalid, invalid...)
	if !verr.Empty() {
		return format.PublicView{}, verr
	}

	patch := models.ClientPatch{Email: email, Attributes: attrs}
	if mobile != nil {
		sealed, err := d.cipher.Encrypt(*mobile, cryptox.EncodingHex)
		if err != nil {
			return format.PublicView{}, fmt.Errorf("encrypt mobile: %w", err)
		}
		patch.Mobile = &sealed
	}

	c, err := d.store.Modify(ctx, id, patch)
	if err != nil {
		return format.PublicView{}, err
	}
	d.logger.Info(ctx, "client modified", "id", id)

	return format.Public(c, d.cipher)
}

// Delete removes the client and all of its attributes.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.store.Delete(ctx, id); err != nil {
		return err
	}
	d.recorder.IncrementClientsDeleted()
	d.logger.Info(ctx, "client deleted", "id", id)
	return nil
}

// checkContact validates the email and mobile entries present in fields.
// The returned mobile is normalized; nil pointers mean the field is absent.
func (d *Directory) checkContact(ctx context.Context, fields map[string]any) (*string, *string, *common.ValidationError) {
	verr := &common.ValidationError{}
	var email, mobile *string

	if v, ok := fields[models.FieldEmail]; ok {
		s, isString := v.(string)
		if isString && d.validator.ValidateEmail(s) {
			email = &s
		} else {
			verr.Invalid = append(verr.Invalid, models.FieldEmail)
		}
	}

	if v, ok := fields[models.FieldMobile]; ok {
		s, isString := v.(string)
		normalized, valid := "", false
		if isString {
			normalized, valid = d.validator.NormalizeMobile(ctx, s)
		}
		if valid {
			mobile = &normalized
		} else {
			verr.Invalid = append(verr.Invalid, models.FieldMobile)
		}
	}

	return email, mobile, verr
}

func (d *Directory) views(clients []*models.Client) ([]format.PublicView, error) {
	out := make([]format.PublicView, 0, len(clients))
	for _, c := range clients {
		v, err := format.Public(c, d.cipher)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
