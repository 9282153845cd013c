package devseed

import (
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
)

func sampleUsers() []model.CreateUserRequest {
	return []model.CreateUserRequest{
		{Username: "editor", Email: "editor@example.com", Password: "editor123", Name: "Eddie Editor", Role: domainauth.RoleEditor},
		{Username: "viewer", Email: "viewer@example.com", Password: "viewer123", Name: "Vera Viewer", Role: domainauth.RoleViewer},
		{
			Username: "former",
			Email:    "former@example.com",
			Password: "former123",
			Name:     "Former Staff",
			Role:     domainauth.RoleEditor,
			Status:   model.UserStatusInactive,
		},
	}
}

func sampleTemplates() []model.CreateTemplateRequest {
	home := "# Welcome\n\nThis page is managed from the admin panel."
	about := "## About us\n\nWe have been serving the community since 2009."
	news := "Latest announcements appear here."
	banner := "/static/banners/home.jpg"
	return []model.CreateTemplateRequest{
		{Title: "Home", Slug: "home", Type: model.TemplateTypeStatic, Content: &home, Banner: &banner},
		{Title: "About", Slug: "about", Type: model.TemplateTypeStatic, Content: &about},
		{Title: "News", Slug: "news", Type: model.TemplateTypeDynamic, Content: &news},
	}
}

// sampleMenus links menus to the seeded templates. A template that failed to
// seed leaves the menu without one.
func sampleMenus(templateIDs map[string]string) []model.CreateMenuRequest {
	return []model.CreateMenuRequest{
		{Title: "Main navigation", Type: model.MenuTypeList, TemplateID: templateIDs["home"]},
		{Title: "About page", Type: model.MenuTypeSingle, TemplateID: templateIDs["about"]},
		{Title: "News grid", Type: model.MenuTypeGrid, Status: model.MenuStatusInactive, TemplateID: templateIDs["news"]},
	}
}

func sampleForms() []model.CreateFormRequest {
	return []model.CreateFormRequest{
		{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "Do you offer group bookings?",
			Fields: []model.FormField{
				{ID: "guests", Type: model.FieldTypeNumber, Label: "Guests", Value: "12"},
			},
		},
		{Name: "John Roe", Email: "john@example.com", Message: "Thanks for the quick reply.", Status: model.FormStatusRead},
		{Name: "Old Inquiry", Email: "old@example.com", Message: "Is the shop open on holidays?", Status: model.FormStatusArchived},
	}
}
