package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/myjar/internal/client/client"
	"github.com/dmitrijs2005/myjar/internal/client/models"
	"github.com/dmitrijs2005/myjar/internal/common"
)

var errBadPage = errors.New("page must be a positive integer")

// idArg returns the id given on the command line, or asks for one.
func (a *App) idArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) report(err error) error {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		if len(verr.Missing) > 0 {
			log.Printf("Missing fields: %s", strings.Join(verr.Missing, ", "))
		}
		if len(verr.Invalid) > 0 {
			log.Printf("Invalid fields: %s", strings.Join(verr.Invalid, ", "))
		}
	case errors.Is(err, common.ErrorNotFound):
		log.Println("Client not found")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		log.Println("Server is unavailable, try again later")
	default:
		log.Printf("Error: %s", err.Error())
	}
	return err
}

func (a *App) print(clients ...models.Client) {
	for _, c := range clients {
		fmt.Fprintln(a.out, c.String())
	}
}

func (a *App) Add(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return a.report(err)
	}
	mobile, err := GetSimpleText(a.reader, "Mobile", a.out)
	if err != nil {
		return a.report(err)
	}
	lines, err := GetFieldLines(a.reader, "Attributes", a.out)
	if err != nil {
		return a.report(err)
	}

	fields, err := models.FieldsFromString(lines)
	if err != nil {
		return a.report(err)
	}
	fields[models.FieldEmail] = email
	fields[models.FieldMobile] = mobile

	c, err := a.client.Create(ctx, fields)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Client %s added\n", c.ID)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter client id to show")
	if err != nil {
		return a.report(err)
	}

	c, err := a.client.Get(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.print(c)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return a.report(errBadPage)
		}
		page = n
	}

	size := a.config.PageSize
	clients, err := a.client.List(ctx, (page-1)*size, size)
	if err != nil {
		return a.report(err)
	}
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients")
		return nil
	}
	a.print(clients...)
	return nil
}

func (a *App) Find(ctx context.Context) error {
	lines, err := GetFieldLines(a.reader, "Search terms", a.out)
	if err != nil {
		return a.report(err)
	}
	criteria, err := models.CriteriaFromString(lines)
	if err != nil {
		return a.report(err)
	}

	clients, err := a.client.Search(ctx, criteria, 0, a.config.PageSize)
	if err != nil {
		return a.report(err)
	}
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients")
		return nil
	}
	a.print(clients...)
	return nil
}

// Edit sends only the fields entered. An empty value clears an attribute.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter client id to edit")
	if err != nil {
		return a.report(err)
	}
	lines, err := GetFieldLines(a.reader, "Fields to change", a.out)
	if err != nil {
		return a.report(err)
	}
	fields, err := models.FieldsFromString(lines)
	if err != nil {
		return a.report(err)
	}

	c, err := a.client.Modify(ctx, id, fields)
	if err != nil {
		return a.report(err)
	}
	a.print(c)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter client id to delete")
	if err != nil {
		return a.report(err)
	}

	if err := a.client.Delete(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Client %s deleted\n", id)
	return nil
}
