package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

type NewRole struct {
	Name            string               `json:"name" validate:"required"`
	Note            string               `json:"note"`
	Description     string               `json:"description"`
	DashboardAccess []domain.AccessEntry `json:"dashboard_access_ui"`
}

type UpdateRole struct {
	Name            string               `json:"name" validate:"required"`
	Note            string               `json:"note"`
	Description     string               `json:"description"`
	DashboardAccess []domain.AccessEntry `json:"dashboard_access_ui"`
}

type RoleService struct {
	repo ports.RoleRepository
	nav  ports.NavSchemaProvider
}

func NewRoleService(repo ports.RoleRepository, nav ports.NavSchemaProvider) *RoleService {
	return &RoleService{repo: repo, nav: nav}
}

// Create stamps the acting account as owner regardless of any
// client-supplied email, assigns the id and audit fields server-side.
func (s *RoleService) Create(ctx context.Context, input NewRole, issuerEmail string) (domain.Role, error) {
	if issuerEmail == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	if err := validateStruct(input); err != nil {
		return domain.Role{}, err
	}
	now := time.Now().UTC()
	role := domain.Role{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Email:           issuerEmail,
		Note:            input.Note,
		Description:     input.Description,
		DashboardAccess: input.DashboardAccess,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if role.DashboardAccess == nil {
		role.DashboardAccess = []domain.AccessEntry{}
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// Update replaces the whole access list, never per-entry patches.
// Ownership is immutable here; use TransferOwnership for that.
func (s *RoleService) Update(ctx context.Context, id string, input UpdateRole) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	if err := validateStruct(input); err != nil {
		return domain.Role{}, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	role.Name = input.Name
	role.Note = input.Note
	role.Description = input.Description
	role.DashboardAccess = input.DashboardAccess
	if role.DashboardAccess == nil {
		role.DashboardAccess = []domain.AccessEntry{}
	}
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) TransferOwnership(ctx context.Context, id, newOwner string) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	if err := validateVar(newOwner, "required,email"); err != nil {
		return domain.Role{}, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	role.Email = newOwner
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// GrantFullAccess resets the role's access list to one fully granted
// entry per navigation node. Narrower grants are lost on purpose.
func (s *RoleService) GrantFullAccess(ctx context.Context, id string) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	tree, err := s.nav.Schema(ctx)
	if err != nil {
		return domain.Role{}, err
	}
	role.DashboardAccess = domain.GrantFullAccess(tree)
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// AssignAccessPath checks one navigation path onto the role's access
// list with no capabilities granted yet.
func (s *RoleService) AssignAccessPath(ctx context.Context, id, name, path string) (domain.Role, error) {
	if id == "" || path == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	role.DashboardAccess = domain.AssignPath(role.DashboardAccess, name, path)
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// RevokeAccessPath removes one entry. Revoking a parent does not
// cascade to its children; each node is independent.
func (s *RoleService) RevokeAccessPath(ctx context.Context, id, path string) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	entries, err := domain.RevokePath(role.DashboardAccess, path)
	if err != nil {
		return domain.Role{}, err
	}
	role.DashboardAccess = entries
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) SetAccessPermission(ctx context.Context, id, path, capability string, value bool) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	capName, err := domain.ParseCapability(capability)
	if err != nil {
		return domain.Role{}, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	entries, err := domain.SetPermission(role.DashboardAccess, path, capName, value)
	if err != nil {
		return domain.Role{}, err
	}
	role.DashboardAccess = entries
	role.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id string) (domain.Role, error) {
	if id == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *RoleService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if q := strings.ToLower(filter.Search); q != "" {
		matched := roles[:0:0]
		for _, r := range roles {
			if strings.Contains(strings.ToLower(r.Name), q) ||
				strings.Contains(strings.ToLower(r.Email), q) ||
				strings.Contains(strings.ToLower(r.Description), q) {
				matched = append(matched, r)
			}
		}
		roles = matched
	}
	return paginate(roles, filter), nil
}

func (s *RoleService) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	for _, id := range ids {
		if id == "" {
			return domain.ErrInvalidInput
		}
	}
	return s.repo.Delete(ctx, ids...)
}

// BulkUpdate applies a batch of partial role edits keyed by _id. Only
// the editable metadata fields are honored; ownership and audit fields
// cannot be smuggled in through a bulk payload.
func (s *RoleService) BulkUpdate(ctx context.Context, docs []domain.Document) error {
	updates, err := domain.UpdatePayload(docs)
	if err != nil {
		return err
	}
	for _, u := range updates {
		role, err := s.repo.GetByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if v, ok := u.Data["name"].(string); ok && v != "" {
			role.Name = v
		}
		if v, ok := u.Data["note"].(string); ok {
			role.Note = v
		}
		if v, ok := u.Data["description"].(string); ok {
			role.Description = v
		}
		role.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

func paginate[T any](items []T, filter domain.ListFilter) []T {
	if filter.Limit <= 0 {
		return items
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * filter.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + filter.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
