package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/forms"
	"github.com/target/admin-panel/internal/state"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// crud maps one collection onto list/get/create/update/delete subcommands.
// name is both the command and the route segment.
type crud[T, C, U any] struct {
	name     string
	singular string
	short    string
	holder   func() *state.Resource[T, C, U]
	// create binds its flags on cmd and returns the request builder run after parsing.
	create func(cmd *cobra.Command) func() (C, error)
	update func(cmd *cobra.Command) func(current *T) (U, error)
}

func crudCmd[T, C, U any](a *app, r crud[T, C, U]) *cobra.Command {
	root := &cobra.Command{Use: r.name, Short: r.short}
	editPath := func(id string) string { return fmt.Sprintf("/%s/edit/%s", r.name, id) }

	var params client.ListParams
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + r.name,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.guard("/" + r.name); err != nil {
				return err
			}
			h := r.holder()
			items, err := h.FetchAll(cmd.Context(), params)
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			return a.render(items)
		},
	}
	lf := list.Flags()
	lf.StringVar(&params.Q, "search", "", "Free-text filter")
	lf.IntVar(&params.Limit, "limit", 0, "Maximum number of results")
	lf.IntVar(&params.Offset, "offset", 0, "Results to skip")
	lf.StringVar(&params.Sort, "sort", "", "Sort column")
	lf.StringVar(&params.Dir, "dir", "", "Sort direction (asc|desc)")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one " + r.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(editPath(args[0])); err != nil {
				return err
			}
			h := r.holder()
			item, err := h.FetchOne(cmd.Context(), args[0])
			if err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			return a.render(item)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + r.singular,
		Args:  cobra.NoArgs,
	}
	buildCreate := r.create(create)
	create.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.guard("/" + r.name + "/add"); err != nil {
			return err
		}
		req, err := buildCreate()
		if err != nil {
			return err
		}
		h := r.holder()
		item, err := h.Create(cmd.Context(), req)
		if err != nil {
			return holderError(err, h.Snapshot().Error)
		}
		return a.render(item)
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change a " + r.singular + "; flags left out keep their value",
		Args:  cobra.ExactArgs(1),
	}
	buildUpdate := r.update(update)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.guard(editPath(args[0])); err != nil {
			return err
		}
		h := r.holder()
		current, err := h.FetchOne(cmd.Context(), args[0])
		if err != nil {
			return holderError(err, h.Snapshot().Error)
		}
		req, err := buildUpdate(current)
		if err != nil {
			return err
		}
		item, err := h.Update(cmd.Context(), args[0], req)
		if err != nil {
			return holderError(err, h.Snapshot().Error)
		}
		return a.render(item)
	}

	var yes bool
	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a " + r.singular,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard("/" + r.name); err != nil {
				return err
			}
			if !yes {
				answer, err := a.prompt(fmt.Sprintf("Delete %s %s? [y/N]", r.singular, args[0]))
				if err != nil {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					a.printf("Aborted\n")
					return nil
				}
			}
			h := r.holder()
			if err := h.Delete(cmd.Context(), args[0]); err != nil {
				return holderError(err, h.Snapshot().Error)
			}
			a.printf("Deleted %s %s\n", r.singular, args[0])
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	root.AddCommand(list, get, create, update, del)
	return root
}

// keep resets every flag target the user did not set to its current value.
func keep(cmd *cobra.Command, targets map[string]*string, current map[string]string) {
	for name, dst := range targets {
		if !cmd.Flags().Changed(name) {
			*dst = current[name]
		}
	}
}

func (a *app) usersCmd() *cobra.Command {
	bind := func(cmd *cobra.Command) (*forms.User, map[string]*string) {
		f := &forms.User{}
		fl := cmd.Flags()
		fl.StringVar(&f.Username, "username", "", "Login name")
		fl.StringVar(&f.Email, "email", "", "Email address")
		fl.StringVar(&f.Name, "name", "", "Display name")
		fl.StringVar(&f.Role, "role", "", "admin, editor or viewer")
		fl.StringVar(&f.Avatar, "avatar", "", "Avatar URL")
		fl.StringVar(&f.Status, "status", "", "active or inactive")
		fl.StringVar(&f.Password, "password", "", "Password")
		fl.StringVar(&f.ConfirmPassword, "confirm-password", "", "Password again; prompted when omitted")
		return f, map[string]*string{
			"username": &f.Username,
			"email":    &f.Email,
			"name":     &f.Name,
			"role":     &f.Role,
			"avatar":   &f.Avatar,
			"status":   &f.Status,
		}
	}
	confirm := func(f *forms.User) error {
		if f.Password == "" || f.ConfirmPassword != "" {
			return nil
		}
		var err error
		f.ConfirmPassword, err = a.prompt("Confirm password")
		return err
	}

	return crudCmd(a, crud[model.User, model.CreateUserRequest, model.UpdateUserRequest]{
		name:     "users",
		singular: "user",
		short:    "Manage accounts (admin only)",
		holder:   func() *state.Users { return state.NewUsers(a.api.Users()) },
		create: func(cmd *cobra.Command) func() (model.CreateUserRequest, error) {
			f, _ := bind(cmd)
			return func() (model.CreateUserRequest, error) {
				if f.Password == "" {
					var err error
					if f.Password, err = a.prompt("Password"); err != nil {
						return model.CreateUserRequest{}, err
					}
				}
				if err := confirm(f); err != nil {
					return model.CreateUserRequest{}, err
				}
				if err := f.Validate(true).Err(); err != nil {
					return model.CreateUserRequest{}, err
				}
				return f.CreateRequest(), nil
			}
		},
		update: func(cmd *cobra.Command) func(*model.User) (model.UpdateUserRequest, error) {
			f, targets := bind(cmd)
			return func(cur *model.User) (model.UpdateUserRequest, error) {
				keep(cmd, targets, map[string]string{
					"username": cur.Username,
					"email":    cur.Email,
					"name":     cur.Name,
					"role":     string(cur.Role),
					"avatar":   cur.Avatar,
					"status":   string(cur.Status),
				})
				if err := confirm(f); err != nil {
					return model.UpdateUserRequest{}, err
				}
				if err := f.Validate(false).Err(); err != nil {
					return model.UpdateUserRequest{}, err
				}
				return f.UpdateRequest(), nil
			}
		},
	})
}

var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

// renderMarkdown converts Markdown source to the HTML stored as template content.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

type templateInput struct {
	form        forms.Template
	contentFile string
	markdown    bool
}

// content resolves --content-file and --markdown into the final body.
func (in *templateInput) content() error {
	if in.contentFile != "" {
		raw, err := os.ReadFile(in.contentFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		in.form.Content = string(raw)
	}
	if in.markdown && in.form.Content != "" {
		html, err := renderMarkdown(in.form.Content)
		if err != nil {
			return err
		}
		in.form.Content = html
	}
	return nil
}

func (a *app) templatesCmd() *cobra.Command {
	bind := func(cmd *cobra.Command) (*templateInput, map[string]*string) {
		in := &templateInput{}
		fl := cmd.Flags()
		fl.StringVar(&in.form.Title, "title", "", "Title")
		fl.StringVar(&in.form.Slug, "slug", "", "URL slug; derived from the title when omitted")
		fl.StringVar(&in.form.Type, "type", "", "static or dynamic")
		fl.StringVar(&in.form.Content, "content", "", "Body")
		fl.StringVar(&in.contentFile, "content-file", "", "Read the body from a file")
		fl.BoolVar(&in.markdown, "markdown", false, "Treat the body as Markdown and store the rendered HTML")
		fl.StringVar(&in.form.Banner, "banner", "", "Banner image URL")
		return in, map[string]*string{
			"title":  &in.form.Title,
			"slug":   &in.form.Slug,
			"type":   &in.form.Type,
			"banner": &in.form.Banner,
		}
	}

	return crudCmd(a, crud[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]{
		name:     "templates",
		singular: "template",
		short:    "Manage page templates",
		holder:   func() *state.Templates { return state.NewTemplates(a.api.Templates()) },
		create: func(cmd *cobra.Command) func() (model.CreateTemplateRequest, error) {
			in, _ := bind(cmd)
			return func() (model.CreateTemplateRequest, error) {
				if err := in.content(); err != nil {
					return model.CreateTemplateRequest{}, err
				}
				if in.form.Slug == "" {
					in.form.Slug = model.Slugify(in.form.Title)
				}
				if err := in.form.Validate().Err(); err != nil {
					return model.CreateTemplateRequest{}, err
				}
				return in.form.Request(), nil
			}
		},
		update: func(cmd *cobra.Command) func(*model.Template) (model.UpdateTemplateRequest, error) {
			in, targets := bind(cmd)
			return func(cur *model.Template) (model.UpdateTemplateRequest, error) {
				keep(cmd, targets, map[string]string{
					"title":  cur.Title,
					"slug":   cur.Slug,
					"type":   string(cur.Type),
					"banner": deref(cur.Banner),
				})
				contentChanged := cmd.Flags().Changed("content") || cmd.Flags().Changed("content-file")
				if contentChanged {
					if err := in.content(); err != nil {
						return model.UpdateTemplateRequest{}, err
					}
				}
				if err := in.form.Validate().Err(); err != nil {
					return model.UpdateTemplateRequest{}, err
				}
				c := in.form.Request()
				req := model.UpdateTemplateRequest{Title: &c.Title, Slug: &c.Slug, Type: &c.Type, Banner: c.Banner}
				if contentChanged {
					req.Content = &in.form.Content
				}
				if req.Banner == nil && cmd.Flags().Changed("banner") {
					empty := ""
					req.Banner = &empty
				}
				return req, nil
			}
		},
	})
}

func (a *app) menusCmd() *cobra.Command {
	bind := func(cmd *cobra.Command) (*forms.Menu, map[string]*string) {
		f := &forms.Menu{}
		fl := cmd.Flags()
		fl.StringVar(&f.Title, "title", "", "Title")
		fl.StringVar(&f.Type, "type", "", "list, single or grid")
		fl.StringVar(&f.Status, "status", "", "active or inactive")
		fl.StringVar(&f.TemplateID, "template-id", "", "Template shown by the menu")
		return f, map[string]*string{
			"title":       &f.Title,
			"type":        &f.Type,
			"status":      &f.Status,
			"template-id": &f.TemplateID,
		}
	}

	return crudCmd(a, crud[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]{
		name:     "menus",
		singular: "menu",
		short:    "Manage navigation menus",
		holder:   func() *state.Menus { return state.NewMenus(a.api.Menus()) },
		create: func(cmd *cobra.Command) func() (model.CreateMenuRequest, error) {
			f, _ := bind(cmd)
			return func() (model.CreateMenuRequest, error) {
				if err := f.Validate().Err(); err != nil {
					return model.CreateMenuRequest{}, err
				}
				return f.Request(), nil
			}
		},
		update: func(cmd *cobra.Command) func(*model.Menu) (model.UpdateMenuRequest, error) {
			f, targets := bind(cmd)
			return func(cur *model.Menu) (model.UpdateMenuRequest, error) {
				keep(cmd, targets, map[string]string{
					"title":       cur.Title,
					"type":        string(cur.Type),
					"status":      string(cur.Status),
					"template-id": cur.TemplateID,
				})
				if err := f.Validate().Err(); err != nil {
					return model.UpdateMenuRequest{}, err
				}
				c := f.Request()
				return model.UpdateMenuRequest{Title: &c.Title, Type: &c.Type, Status: &c.Status, TemplateID: &c.TemplateID}, nil
			}
		},
	})
}

type formInput struct {
	name, email, message, status string
	fieldsFile                   string
	values                       map[string]string
}

// fields loads --fields-file, falling back to base, and applies --field values.
func (in *formInput) fields(base []model.FormField) ([]model.FormField, error) {
	fields := append([]model.FormField(nil), base...)
	if in.fieldsFile != "" {
		raw, err := os.ReadFile(in.fieldsFile)
		if err != nil {
			return nil, fmt.Errorf("read fields file: %w", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode fields file: %w", err)
		}
	}
	for id := range in.values {
		if !hasField(fields, id) {
			return nil, fmt.Errorf("unknown field %q", id)
		}
	}
	values := make(map[string]string, len(fields))
	for i := range fields {
		if v, ok := in.values[fields[i].ID]; ok {
			fields[i].Value = v
		}
		values[fields[i].ID] = fields[i].Value
	}
	if err := forms.Dynamic(fields, values).Err(); err != nil {
		return nil, err
	}
	return fields, nil
}

func hasField(fields []model.FormField, id string) bool {
	for _, f := range fields {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (a *app) formsCmd() *cobra.Command {
	bind := func(cmd *cobra.Command) *formInput {
		in := &formInput{}
		fl := cmd.Flags()
		fl.StringVar(&in.name, "name", "", "Submitter name")
		fl.StringVar(&in.email, "email", "", "Submitter email")
		fl.StringVar(&in.message, "message", "", "Message")
		fl.StringVar(&in.status, "status", "", "new, read or archived")
		fl.StringVar(&in.fieldsFile, "fields-file", "", "JSON file with the form builder fields")
		fl.StringToStringVar(&in.values, "field", nil, "Field value as id=value; repeatable")
		return in
	}

	return crudCmd(a, crud[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]{
		name:     "forms",
		singular: "form submission",
		short:    "Manage form submissions",
		holder:   func() *state.Forms { return state.NewForms(a.api.Forms()) },
		create: func(cmd *cobra.Command) func() (model.CreateFormRequest, error) {
			in := bind(cmd)
			return func() (model.CreateFormRequest, error) {
				fields, err := in.fields(nil)
				if err != nil {
					return model.CreateFormRequest{}, err
				}
				req := model.CreateFormRequest{
					Name:    in.name,
					Email:   in.email,
					Message: in.message,
					Status:  model.FormStatus(in.status),
					Fields:  fields,
				}
				if err := req.Validate(); err != nil {
					return model.CreateFormRequest{}, err
				}
				return req, nil
			}
		},
		update: func(cmd *cobra.Command) func(*model.FormSubmission) (model.UpdateFormRequest, error) {
			in := bind(cmd)
			return func(cur *model.FormSubmission) (model.UpdateFormRequest, error) {
				fl := cmd.Flags()
				req := model.UpdateFormRequest{}
				if fl.Changed("name") {
					req.Name = &in.name
				}
				if fl.Changed("email") {
					req.Email = &in.email
				}
				if fl.Changed("message") {
					req.Message = &in.message
				}
				if fl.Changed("status") {
					status := model.FormStatus(in.status)
					req.Status = &status
				}
				if fl.Changed("fields-file") || fl.Changed("field") {
					fields, err := in.fields(cur.Fields)
					if err != nil {
						return model.UpdateFormRequest{}, err
					}
					req.Fields = &fields
				}
				if err := req.Validate(); err != nil {
					return model.UpdateFormRequest{}, err
				}
				return req, nil
			}
		},
	})
}
