//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ListOptions controls paging, search and sorting for resource lists.
// Notes:
// - Q matches the resource's search columns via ILIKE substring, OR-ed together.
// - Sort supports "created_at" plus a resource specific title/name column.
// - Dir supports "asc", "desc" (case-insensitive); values are normalized internally.
type ListOptions struct {
	Limit  int
	Offset int
	Q      string
	Sort   string
	Dir    string
}

// DashboardStats holds the per-resource record counts shown on the dashboard.
type DashboardStats struct {
	Users     int `json:"users"`
	Templates int `json:"templates"`
	Menus     int `json:"menus"`
	Forms     int `json:"forms"`
}
