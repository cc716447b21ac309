package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

// StaticProvider serves the dashboard navigation schema. The schema is
// ground truth for which paths exist; it is fixed at startup and never
// mutated by the service.
type StaticProvider struct {
	tree []domain.NavNode
}

var _ ports.NavSchemaProvider = (*StaticProvider)(nil)

func NewStaticProvider(tree []domain.NavNode) *StaticProvider {
	if tree == nil {
		tree = DefaultSchema()
	}
	return &StaticProvider{tree: tree}
}

// NewProviderFromFile loads a schema override from a JSON file.
func NewProviderFromFile(path string) (*StaticProvider, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading navigation schema: %w", err)
	}
	var tree []domain.NavNode
	if err := json.Unmarshal(contents, &tree); err != nil {
		return nil, fmt.Errorf("parsing navigation schema: %w", err)
	}
	return &StaticProvider{tree: tree}, nil
}

func (p *StaticProvider) Schema(context.Context) ([]domain.NavNode, error) {
	return p.tree, nil
}

// DefaultSchema mirrors the admin dashboard's sidebar.
func DefaultSchema() []domain.NavNode {
	return []domain.NavNode{
		{Name: "Dashboard", Path: "/dashboard", IconName: "home"},
		{
			Name: "Courses", Path: "/dashboard/courses", IconName: "book",
			Children: []domain.NavNode{
				{Name: "Assessments", Path: "/dashboard/courses/assessments", IconName: "clipboard"},
				{Name: "Submissions", Path: "/dashboard/courses/submissions", IconName: "inbox"},
			},
		},
		{
			Name: "Accounts", Path: "/dashboard/accounts", IconName: "users",
			Children: []domain.NavNode{
				{Name: "Users", Path: "/dashboard/users", IconName: "user"},
				{Name: "Roles", Path: "/dashboard/roles", IconName: "shield"},
			},
		},
		{
			Name: "Content", Path: "/dashboard/content", IconName: "layout",
			Children: []domain.NavNode{
				{Name: "Posts", Path: "/dashboard/posts", IconName: "file-text"},
				{Name: "Page Builder", Path: "/dashboard/page-builder", IconName: "grid"},
			},
		},
	}
}
