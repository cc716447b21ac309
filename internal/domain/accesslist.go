package domain

// Access list operations reconcile the navigation schema with a role's
// assigned entries. Entries are treated as immutable: every mutation
// returns a fresh slice and leaves the input untouched, so callers can
// keep the previous list around for retry after a failed save.

func indexByPath(entries []AccessEntry) map[string]int {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e.Path] = i
	}
	return idx
}

func IsPathAssigned(entries []AccessEntry, path string) bool {
	_, ok := indexByPath(entries)[path]
	return ok
}

// AssignPath adds a new entry with no capabilities granted. Assigning an
// already present path is a no-op, the existing grants survive.
func AssignPath(entries []AccessEntry, name, path string) []AccessEntry {
	if path == "" {
		return entries
	}
	if IsPathAssigned(entries, path) {
		return entries
	}
	out := make([]AccessEntry, len(entries), len(entries)+1)
	copy(out, entries)
	return append(out, AccessEntry{Name: name, Path: path})
}

// RevokePath removes the entry for path. Unknown paths are an error so
// API misuse is observable instead of silently swallowed.
func RevokePath(entries []AccessEntry, path string) ([]AccessEntry, error) {
	i, ok := indexByPath(entries)[path]
	if !ok {
		return nil, ErrPathNotAssigned
	}
	out := make([]AccessEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	out = append(out, entries[i+1:]...)
	return out, nil
}

// SetPermission flips one capability on an assigned path. Capabilities
// can only be set on paths that are already assigned.
func SetPermission(entries []AccessEntry, path string, c Capability, value bool) ([]AccessEntry, error) {
	i, ok := indexByPath(entries)[path]
	if !ok {
		return nil, ErrPathNotAssigned
	}
	out := make([]AccessEntry, len(entries))
	copy(out, entries)
	out[i].UserAccess = out[i].UserAccess.With(c, value)
	return out, nil
}

// GrantFullAccess walks every node and child of the navigation schema
// and produces one fully granted entry per node. The result replaces
// any previous assignment list wholesale; this is a reset to maximum,
// not a merge.
func GrantFullAccess(tree []NavNode) []AccessEntry {
	var out []AccessEntry
	var walk func(nodes []NavNode)
	walk = func(nodes []NavNode) {
		for _, n := range nodes {
			out = append(out, AccessEntry{Name: n.Name, Path: n.Path, UserAccess: FullAccess()})
			walk(n.Children)
		}
	}
	walk(tree)
	return out
}

// CountNodes returns the total number of nodes in the schema, parents
// and children included.
func CountNodes(tree []NavNode) int {
	count := 0
	for _, n := range tree {
		count += 1 + CountNodes(n.Children)
	}
	return count
}
