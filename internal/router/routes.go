package router

import domainauth "github.com/target/admin-panel/internal/domain/auth"

var adminOnly = []domainauth.Role{domainauth.RoleAdmin}

// DefaultRoutes is the panel's view table.
func DefaultRoutes() []Route {
	routes := []Route{
		{Pattern: PathLogin, View: "login"},
		{Pattern: PathUnauthorized, View: "unauthorized"},
		{Pattern: PathDashboard, View: "dashboard", Protected: true},
		{Pattern: "/profile", View: "profile", Protected: true},
		{Pattern: "/change-password", View: "change-password", Protected: true},
	}
	routes = append(routes, crud("users", adminOnly)...)
	routes = append(routes, crud("templates", nil)...)
	routes = append(routes, crud("menus", nil)...)
	routes = append(routes, crud("forms", nil)...)
	return append(routes, Route{Pattern: "/settings", View: "settings", Protected: true})
}

// Default returns a router over DefaultRoutes.
func Default() *Router { return MustNew(DefaultRoutes()) }

func crud(name string, roles []domainauth.Role) []Route {
	return []Route{
		{Pattern: "/" + name, View: name + "-list", Protected: true, Roles: roles},
		{Pattern: "/" + name + "/add", View: name + "-add", Protected: true, Roles: roles},
		{Pattern: "/" + name + "/edit/:id", View: name + "-edit", Protected: true, Roles: roles},
	}
}
