package application

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"dashboard-rbac/internal/domain"
	"dashboard-rbac/internal/ports"
)

var resourceSlug = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ResourceService is the generic document CRUD behind the per-entity
// admin screens (courses, posts, submissions and friends). Every
// collection shares the same shape: untyped documents keyed by _id.
type ResourceService struct {
	repo ports.ResourceRepository
}

func NewResourceService(repo ports.ResourceRepository) *ResourceService {
	return &ResourceService{repo: repo}
}

func checkResource(resource string) error {
	if !resourceSlug.MatchString(resource) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *ResourceService) Create(ctx context.Context, resource string, doc domain.Document) (domain.Document, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := domain.Document{}
	for k, v := range doc {
		out[k] = v
	}
	if out.ID() == "" {
		out["_id"] = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	out["created_at"] = now
	out["updated_at"] = now
	if err := s.repo.Create(ctx, resource, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) Update(ctx context.Context, resource string, doc domain.Document) error {
	if err := checkResource(resource); err != nil {
		return err
	}
	updates, err := domain.UpdatePayload([]domain.Document{doc})
	if err != nil {
		return err
	}
	u := updates[0]
	u.Data["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(ctx, resource, u.ID, u.Data)
}

func (s *ResourceService) GetByID(ctx context.Context, resource, id string) (domain.Document, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, resource, id)
}

// List pages through a collection; the search term matches any string
// field case-insensitively.
func (s *ResourceService) List(ctx context.Context, resource string, filter domain.ListFilter) ([]domain.Document, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	docs, err := s.repo.List(ctx, resource)
	if err != nil {
		return nil, err
	}
	if q := strings.ToLower(filter.Search); q != "" {
		matched := docs[:0:0]
		for _, d := range docs {
			for _, v := range d {
				str, ok := v.(string)
				if ok && strings.Contains(strings.ToLower(str), q) {
					matched = append(matched, d)
					break
				}
			}
		}
		docs = matched
	}
	return paginate(docs, filter), nil
}

func (s *ResourceService) Delete(ctx context.Context, resource string, ids ...string) error {
	if err := checkResource(resource); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	for _, id := range ids {
		if id == "" {
			return domain.ErrMissingID
		}
	}
	return s.repo.Delete(ctx, resource, ids...)
}

// BulkUpdate reconciles a whole edited working set in one request.
// The payload split guarantees no _id ever lands inside an update body.
func (s *ResourceService) BulkUpdate(ctx context.Context, resource string, docs []domain.Document) error {
	if err := checkResource(resource); err != nil {
		return err
	}
	if len(docs) == 0 {
		return domain.ErrInvalidInput
	}
	updates, err := domain.UpdatePayload(docs)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range updates {
		u.Data["updated_at"] = now
		if err := s.repo.Update(ctx, resource, u.ID, u.Data); err != nil {
			return err
		}
	}
	return nil
}

// BulkSetField loads the selected documents, applies one uniform field
// override across all of them and writes the result back.
func (s *ResourceService) BulkSetField(ctx context.Context, resource string, ids []string, field string, value any) error {
	if err := checkResource(resource); err != nil {
		return err
	}
	if len(ids) == 0 || field == "" || field == "_id" {
		return domain.ErrInvalidInput
	}
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.repo.GetByID(ctx, resource, id)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	return s.BulkUpdate(ctx, resource, domain.SetField(docs, field, value))
}
