package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dashboard-rbac/internal/domain"
)

type resourceRepoMock struct{ mock.Mock }

func (m *resourceRepoMock) Create(ctx context.Context, resource string, doc domain.Document) error {
	args := m.Called(ctx, resource, doc)
	return args.Error(0)
}

func (m *resourceRepoMock) Update(ctx context.Context, resource, id string, data domain.Document) error {
	args := m.Called(ctx, resource, id, data)
	return args.Error(0)
}

func (m *resourceRepoMock) GetByID(ctx context.Context, resource, id string) (domain.Document, error) {
	args := m.Called(ctx, resource, id)
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *resourceRepoMock) List(ctx context.Context, resource string) ([]domain.Document, error) {
	args := m.Called(ctx, resource)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *resourceRepoMock) Delete(ctx context.Context, resource string, ids ...string) error {
	args := m.Called(ctx, resource, ids)
	return args.Error(0)
}

func TestResourceService_CreateAssignsIDAndAudit(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)

	repo.On("Create", mock.Anything, "courses", mock.MatchedBy(func(doc domain.Document) bool {
		return doc.ID() != "" && doc["title"] == "Algebra" && doc["created_at"] != nil
	})).Return(nil)

	doc, err := svc.Create(context.Background(), "courses", domain.Document{"title": "Algebra"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID())
	repo.AssertExpectations(t)
}

func TestResourceService_CreateRejectsBadInput(t *testing.T) {
	svc := NewResourceService(new(resourceRepoMock))

	_, err := svc.Create(context.Background(), "Bad Slug!", domain.Document{"title": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "courses", domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResourceService_UpdateStripsID(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)

	repo.On("Update", mock.Anything, "courses", "c1", mock.MatchedBy(func(data domain.Document) bool {
		_, hasID := data["_id"]
		return !hasID && data["title"] == "Geometry"
	})).Return(nil)

	err := svc.Update(context.Background(), "courses", domain.Document{"_id": "c1", "title": "Geometry"})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	err = svc.Update(context.Background(), "courses", domain.Document{"title": "no id"})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestResourceService_ListSearchAndPaginate(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)
	repo.On("List", mock.Anything, "posts").Return([]domain.Document{
		{"_id": "p1", "title": "Winter announcements"},
		{"_id": "p2", "title": "Summer recap"},
		{"_id": "p3", "title": "winter sports"},
	}, nil)

	got, err := svc.List(context.Background(), "posts", domain.ListFilter{Search: "WINTER"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), "posts", domain.ListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestResourceService_BulkUpdate(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)

	repo.On("Update", mock.Anything, "courses", "c1", mock.MatchedBy(func(data domain.Document) bool {
		_, hasID := data["_id"]
		return !hasID && data["archived"] == true
	})).Return(nil)
	repo.On("Update", mock.Anything, "courses", "c2", mock.Anything).Return(nil)

	err := svc.BulkUpdate(context.Background(), "courses", []domain.Document{
		{"_id": "c1", "archived": true},
		{"_id": "c2", "archived": true},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestResourceService_BulkUpdateGuardsMissingID(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)

	err := svc.BulkUpdate(context.Background(), "courses", []domain.Document{
		{"_id": "c1", "archived": true},
		{"archived": true},
	})
	assert.ErrorIs(t, err, domain.ErrMissingID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceService_BulkSetField(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)

	repo.On("GetByID", mock.Anything, "courses", "c1").Return(domain.Document{"_id": "c1", "status": "draft"}, nil)
	repo.On("GetByID", mock.Anything, "courses", "c2").Return(domain.Document{"_id": "c2", "status": "open"}, nil)
	repo.On("Update", mock.Anything, "courses", mock.Anything, mock.MatchedBy(func(data domain.Document) bool {
		return data["status"] == "closed"
	})).Return(nil).Twice()

	err := svc.BulkSetField(context.Background(), "courses", []string{"c1", "c2"}, "status", "closed")
	require.NoError(t, err)
	repo.AssertExpectations(t)

	err = svc.BulkSetField(context.Background(), "courses", []string{"c1"}, "_id", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResourceService_Delete(t *testing.T) {
	repo := new(resourceRepoMock)
	svc := NewResourceService(repo)
	repo.On("Delete", mock.Anything, "courses", []string{"c1", "c2"}).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "courses", "c1", "c2"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "courses"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(context.Background(), "courses", ""), domain.ErrMissingID)
}
