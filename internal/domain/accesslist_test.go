package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []NavNode {
	return []NavNode{
		{Name: "Dashboard", Path: "/dashboard"},
		{
			Name: "Accounts", Path: "/dashboard/accounts",
			Children: []NavNode{
				{Name: "Users", Path: "/dashboard/users"},
				{Name: "Roles", Path: "/dashboard/roles"},
			},
		},
		{
			Name: "Content", Path: "/dashboard/content",
			Children: []NavNode{
				{Name: "Posts", Path: "/dashboard/posts"},
			},
		},
	}
}

func TestGrantFullAccess_OneEntryPerNode(t *testing.T) {
	tree := sampleTree()
	entries := GrantFullAccess(tree)

	assert.Len(t, entries, CountNodes(tree))
	for _, e := range entries {
		assert.Equal(t, FullAccess(), e.UserAccess, "entry %s", e.Path)
	}
}

func TestGrantFullAccess_OverwritesNotMerges(t *testing.T) {
	entries := GrantFullAccess(sampleTree())
	paths := map[string]bool{}
	for _, e := range entries {
		paths[e.Path] = true
	}
	assert.True(t, paths["/dashboard/users"])
	assert.True(t, paths["/dashboard/accounts"])
	assert.False(t, paths["/somewhere/else"])
}

func TestAssignPath_Idempotent(t *testing.T) {
	entries := AssignPath(nil, "Users", "/dashboard/users")
	require.Len(t, entries, 1)
	assert.Equal(t, PermissionSet{}, entries[0].UserAccess)

	again := AssignPath(entries, "Users", "/dashboard/users")
	assert.Len(t, again, 1)
}

func TestAssignPath_PreservesExistingGrants(t *testing.T) {
	entries := []AccessEntry{{Name: "Users", Path: "/dashboard/users", UserAccess: PermissionSet{Read: true}}}
	out := AssignPath(entries, "Users", "/dashboard/users")
	assert.True(t, out[0].UserAccess.Read)
}

func TestToggleRoundTrip(t *testing.T) {
	entries := AssignPath(nil, "Users", "/dashboard/users")
	out, err := RevokePath(entries, "/dashboard/users")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRevokePath_UnknownPathIsError(t *testing.T) {
	_, err := RevokePath([]AccessEntry{{Name: "Users", Path: "/dashboard/users"}}, "/dashboard/roles")
	assert.ErrorIs(t, err, ErrPathNotAssigned)
}

func TestRevokePath_NoCascadeToChildren(t *testing.T) {
	entries := AssignPath(nil, "Accounts", "/dashboard/accounts")
	entries = AssignPath(entries, "Users", "/dashboard/users")

	out, err := RevokePath(entries, "/dashboard/accounts")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "/dashboard/users", out[0].Path)
}

func TestSetPermission(t *testing.T) {
	entries := AssignPath(nil, "Users", "/dashboard/users")

	out, err := SetPermission(entries, "/dashboard/users", CapUpdate, true)
	require.NoError(t, err)
	assert.Equal(t, PermissionSet{Update: true}, out[0].UserAccess)
	// input list untouched
	assert.Equal(t, PermissionSet{}, entries[0].UserAccess)
}

func TestSetPermission_UnknownPathIsError(t *testing.T) {
	entries := AssignPath(nil, "Users", "/dashboard/users")
	_, err := SetPermission(entries, "/dashboard/roles", CapRead, true)
	assert.ErrorIs(t, err, ErrPathNotAssigned)
}

func TestIsPathAssigned(t *testing.T) {
	entries := AssignPath(nil, "Users", "/dashboard/users")
	assert.True(t, IsPathAssigned(entries, "/dashboard/users"))
	assert.False(t, IsPathAssigned(entries, "/dashboard/roles"))
	assert.False(t, IsPathAssigned(nil, "/dashboard/users"))
}
