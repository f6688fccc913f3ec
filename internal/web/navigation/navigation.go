// Package navigation declares the dashboard navigation tree and its
// role filter.
//
// Entries carry allowed-roles sets over the client's simplified
// single-role view ("admin" / "user"), not the server's directory role
// names: the SPA filters its sidebar by one role string while tokens
// carry the full claim set. Both shapes are kept deliberately.
package navigation

// Client display roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminGroup is the directory group granting the admin display role.
const AdminGroup = "Administrators"

// Entry is a single navigation item.
type Entry struct {
	Title        string   `json:"title"`
	Path         string   `json:"path"`
	Icon         string   `json:"icon"`
	AllowedRoles []string `json:"allowedRoles"`
	SubItems     []Entry  `json:"subItems,omitempty"`
}

// visibleTo reports whether the entry lists the given display role.
func (e Entry) visibleTo(role string) bool {
	for _, allowed := range e.AllowedRoles {
		if allowed == role {
			return true
		}
	}

	return false
}

// Default returns the full navigation tree.
func Default() []Entry {
	return []Entry{
		{
			Title:        "Dashboard",
			Path:         "/dashboard",
			Icon:         "dashboard",
			AllowedRoles: []string{RoleAdmin, RoleUser},
		},
		{
			Title:        "Reports",
			Path:         "/reports",
			Icon:         "report",
			AllowedRoles: []string{RoleAdmin, RoleUser},
			SubItems: []Entry{
				{Title: "By Date", Path: "/reports/date", Icon: "date", AllowedRoles: []string{RoleAdmin, RoleUser}},
				{Title: "By Currency", Path: "/reports/currency", Icon: "money", AllowedRoles: []string{RoleAdmin, RoleUser}},
				{Title: "Sent", Path: "/reports/sent", Icon: "send", AllowedRoles: []string{RoleAdmin, RoleUser}},
				{Title: "Received", Path: "/reports/received", Icon: "receive", AllowedRoles: []string{RoleAdmin, RoleUser}},
			},
		},
		{
			Title:        "Users",
			Path:         "/users",
			Icon:         "users",
			AllowedRoles: []string{RoleAdmin},
			SubItems: []Entry{
				{Title: "User List", Path: "/users/list", Icon: "list", AllowedRoles: []string{RoleAdmin}},
				{Title: "Create User", Path: "/users/create", Icon: "person-add", AllowedRoles: []string{RoleAdmin}},
			},
		},
		{
			Title:        "Roles",
			Path:         "/roles",
			Icon:         "security",
			AllowedRoles: []string{RoleAdmin},
			SubItems: []Entry{
				{Title: "Role List", Path: "/roles/list", Icon: "list", AllowedRoles: []string{RoleAdmin}},
				{Title: "Create Role", Path: "/roles/create", Icon: "permission", AllowedRoles: []string{RoleAdmin}},
			},
		},
		{
			Title:        "Settings",
			Path:         "/settings",
			Icon:         "settings",
			AllowedRoles: []string{RoleAdmin},
		},
	}
}

// Filter returns the entries visible to the given display role,
// with sub-items filtered recursively.
func Filter(entries []Entry, role string) []Entry {
	visible := make([]Entry, 0, len(entries))

	for _, entry := range entries {
		if !entry.visibleTo(role) {
			continue
		}

		entry.SubItems = Filter(entry.SubItems, role)
		visible = append(visible, entry)
	}

	return visible
}

// DisplayRole collapses a directory role set to the client's
// single-role view: admin when the Administrators group is present,
// user otherwise.
func DisplayRole(roles []string) string {
	for _, role := range roles {
		if role == AdminGroup {
			return RoleAdmin
		}
	}

	return RoleUser
}
