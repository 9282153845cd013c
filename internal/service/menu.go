package service

import (
	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/domain/model"
)

// MenuServiceOptions groups dependencies for MenuService.
type MenuServiceOptions struct {
	Repo core.MenuRepository
}

// MenuService manages navigation menus. TemplateID is stored as given and may dangle.
type MenuService struct {
	contentService[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]
}

// NewMenuService constructs a new MenuService.
func NewMenuService(opts MenuServiceOptions) *MenuService {
	if opts.Repo == nil {
		panic("service: MenuService requires Repo")
	}
	return &MenuService{
		contentService: contentService[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]{
			repo:    opts.Repo,
			replace: replaceMenu,
		},
	}
}

func replaceMenu(req model.CreateMenuRequest) model.UpdateMenuRequest {
	typ := req.Type
	if typ == "" {
		typ = model.MenuTypeList
	}
	status := req.Status
	if status == "" {
		status = model.MenuStatusActive
	}
	return model.UpdateMenuRequest{
		Title:      &req.Title,
		Type:       &typ,
		Status:     &status,
		TemplateID: &req.TemplateID,
	}
}
