package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/target/admin-panel/internal/domain/model"
)

// ListParams filters and pages a collection.
type ListParams struct {
	Q      string
	Limit  int
	Offset int
	Sort   string
	Dir    string
}

// Values encodes the non-zero params as a query string.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Q != "" {
		v.Set("q", p.Q)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Dir != "" {
		v.Set("dir", p.Dir)
	}
	return v
}

// Resource is the CRUD accessor of one collection. C is the create and
// replace body, U the partial update body.
type Resource[T, C, U any] struct {
	c    *Client
	path string
}

// List fetches a page of records.
func (r Resource[T, C, U]) List(ctx context.Context, p ListParams) ([]T, error) {
	var out []T
	if err := r.c.Get(ctx, r.path, p.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record.
func (r Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.Get(ctx, r.item(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores a new record.
func (r Resource[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	var out T
	if err := r.c.Post(ctx, r.path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update (PATCH).
func (r Resource[T, C, U]) Update(ctx context.Context, id string, req U) (*T, error) {
	var out T
	if err := r.c.Patch(ctx, r.item(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Replace overwrites a record (PUT).
func (r Resource[T, C, U]) Replace(ctx context.Context, id string, req C) (*T, error) {
	var out T
	if err := r.c.Put(ctx, r.item(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a record.
func (r Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.item(id), nil, nil)
}

func (r Resource[T, C, U]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

type (
	// UserResource is the /users accessor.
	UserResource = Resource[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	// TemplateResource is the /templates accessor.
	TemplateResource = Resource[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]
	// MenuResource is the /menus accessor.
	MenuResource = Resource[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]
	// FormResource is the /forms accessor.
	FormResource = Resource[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]
)

// Users returns the user accessor.
func (c *Client) Users() UserResource { return UserResource{c: c, path: "users"} }

// Templates returns the template accessor.
func (c *Client) Templates() TemplateResource { return TemplateResource{c: c, path: "templates"} }

// Menus returns the menu accessor.
func (c *Client) Menus() MenuResource { return MenuResource{c: c, path: "menus"} }

// Forms returns the form submission accessor.
func (c *Client) Forms() FormResource { return FormResource{c: c, path: "forms"} }
