package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}

	return out
}

func TestFilter_AdminSeesEverything(t *testing.T) {
	visible := Filter(Default(), RoleAdmin)

	assert.ElementsMatch(t,
		[]string{"Dashboard", "Reports", "Users", "Roles", "Settings"},
		titles(visible),
	)
}

func TestFilter_UserSeesSharedEntriesOnly(t *testing.T) {
	visible := Filter(Default(), RoleUser)

	assert.ElementsMatch(t, []string{"Dashboard", "Reports"}, titles(visible))

	// sub-items of shared entries stay visible
	for _, e := range visible {
		if e.Title == "Reports" {
			assert.Len(t, e.SubItems, 4)
		}
	}
}

func TestFilter_SubItemsFilteredRecursively(t *testing.T) {
	entries := []Entry{
		{
			Title:        "Mixed",
			AllowedRoles: []string{RoleAdmin, RoleUser},
			SubItems: []Entry{
				{Title: "Shared", AllowedRoles: []string{RoleAdmin, RoleUser}},
				{Title: "Admin Only", AllowedRoles: []string{RoleAdmin}},
			},
		},
	}

	visible := Filter(entries, RoleUser)
	require.Len(t, visible, 1)
	assert.ElementsMatch(t, []string{"Shared"}, titles(visible[0].SubItems))
}

func TestFilter_UnknownRoleSeesNothing(t *testing.T) {
	assert.Empty(t, Filter(Default(), "auditor"))
}

func TestDisplayRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, DisplayRole([]string{"Administrators", "Users"}))
	assert.Equal(t, RoleUser, DisplayRole([]string{"Users"}))
	assert.Equal(t, RoleUser, DisplayRole(nil))
}
