package authroles

import (
	"strings"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
)

// StaticRoleMapper assigns panel roles from IdP group membership.
// Group names compare case-insensitively, and AD distinguished names
// ("CN=Panel-Admins,OU=Groups,...") match on their CN component.
// Users in neither group become viewers.
type StaticRoleMapper struct {
	AdminGroups  []string
	EditorGroups []string
}

// New builds a mapper from comma-separated group lists.
func New(adminGroups, editorGroups string) StaticRoleMapper {
	return StaticRoleMapper{
		AdminGroups:  splitGroups(adminGroups),
		EditorGroups: splitGroups(editorGroups),
	}
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, groupName(g))
	}
	switch {
	case anyMatch(names, m.AdminGroups):
		return domainauth.RoleAdmin
	case anyMatch(names, m.EditorGroups):
		return domainauth.RoleEditor
	default:
		return domainauth.RoleViewer
	}
}

func anyMatch(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// groupName extracts the CN from a distinguished name, or returns g trimmed.
func groupName(g string) string {
	g = strings.TrimSpace(g)
	first, _, _ := strings.Cut(g, ",")
	if k, v, ok := strings.Cut(first, "="); ok && strings.EqualFold(strings.TrimSpace(k), "cn") {
		return strings.TrimSpace(v)
	}
	return g
}

func splitGroups(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
