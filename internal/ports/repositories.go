package ports

import (
	"context"

	"dashboard-rbac/internal/domain"
)

type RoleRepository interface {
	Create(ctx context.Context, role domain.Role) error
	Update(ctx context.Context, role domain.Role) error
	GetByID(ctx context.Context, id string) (domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Delete(ctx context.Context, ids ...string) error
}

type ResourceRepository interface {
	Create(ctx context.Context, resource string, doc domain.Document) error
	Update(ctx context.Context, resource, id string, data domain.Document) error
	GetByID(ctx context.Context, resource, id string) (domain.Document, error)
	List(ctx context.Context, resource string) ([]domain.Document, error)
	Delete(ctx context.Context, resource string, ids ...string) error
}

type VerificationRepository interface {
	// Replace atomically swaps the active record for its email; at most
	// one active record per email exists at any time.
	Replace(ctx context.Context, rec domain.VerificationRecord) error
	GetByEmail(ctx context.Context, email string) (domain.VerificationRecord, error)
	MarkVerified(ctx context.Context, email string) error
}

type NavSchemaProvider interface {
	Schema(ctx context.Context) ([]domain.NavNode, error)
}
