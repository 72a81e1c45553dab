package mocks

import (
	"context"

	"casevault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) ListCases(ctx context.Context) ([]model.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Case), args.Error(1)
}

func (m *MockCaseRepository) GetCase(ctx context.Context, id string) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) SaveCase(ctx context.Context, c *model.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) DeleteCase(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UpdateCase runs fn against the *model.Case returned by the first Return
// argument, so tests can assert on the mutation. A nil case skips fn.
func (m *MockCaseRepository) UpdateCase(ctx context.Context, id string, fn func(c *model.Case) error) error {
	args := m.Called(ctx, id, fn)
	if c, ok := args.Get(0).(*model.Case); ok && c != nil {
		if err := fn(c); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockCaseRepository) CreateFolder(ctx context.Context, caseID string, folder model.Folder) error {
	args := m.Called(ctx, caseID, folder)
	return args.Error(0)
}

func (m *MockCaseRepository) AddDocumentToFolder(ctx context.Context, caseID, folderID string, doc model.Document) error {
	args := m.Called(ctx, caseID, folderID, doc)
	return args.Error(0)
}

func (m *MockCaseRepository) DeleteFolder(ctx context.Context, caseID, folderID string) error {
	args := m.Called(ctx, caseID, folderID)
	return args.Error(0)
}
