package mocks

import (
	"context"
	"io"

	"casevault/internal/model"
	"casevault/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) ListCases(ctx context.Context) ([]model.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Case), args.Error(1)
}

func (m *MockCaseService) GetCase(ctx context.Context, id string) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseService) CreateCase(ctx context.Context, in service.CaseInput) (*model.Case, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseService) SaveCase(ctx context.Context, c *model.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseService) DeleteCase(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCaseService) CreateFolder(ctx context.Context, caseID string, in service.FolderInput) (*model.Folder, error) {
	args := m.Called(ctx, caseID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockCaseService) DeleteFolder(ctx context.Context, caseID, folderID string) error {
	args := m.Called(ctx, caseID, folderID)
	return args.Error(0)
}

func (m *MockCaseService) CaptureDocument(ctx context.Context, caseID, folderID string, in service.CaptureInput) (*model.Document, error) {
	args := m.Called(ctx, caseID, folderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCaseService) RecategorizeDocument(ctx context.Context, caseID, folderID, docID string, category model.DocumentCategory) (*model.Document, error) {
	args := m.Called(ctx, caseID, folderID, docID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockCaseService) DeleteDocument(ctx context.Context, caseID, folderID, docID string) error {
	args := m.Called(ctx, caseID, folderID, docID)
	return args.Error(0)
}

func (m *MockCaseService) Preview(name, description, customName string) service.Preview {
	args := m.Called(name, description, customName)
	return args.Get(0).(service.Preview)
}

func (m *MockCaseService) Summary(ctx context.Context, id string, detailed bool) (string, error) {
	args := m.Called(ctx, id, detailed)
	return args.String(0), args.Error(1)
}

func (m *MockCaseService) ExportPDF(ctx context.Context, w io.Writer, id string, detailed bool) error {
	args := m.Called(ctx, w, id, detailed)
	return args.Error(0)
}

func (m *MockCaseService) Timeline() service.ItemService[model.TimelineEvent] {
	return m.Called().Get(0).(service.ItemService[model.TimelineEvent])
}

func (m *MockCaseService) VoiceNotes() service.ItemService[model.VoiceNote] {
	return m.Called().Get(0).(service.ItemService[model.VoiceNote])
}

func (m *MockCaseService) Witnesses() service.ItemService[model.Witness] {
	return m.Called().Get(0).(service.ItemService[model.Witness])
}

func (m *MockCaseService) Expenses() service.ItemService[model.Expense] {
	return m.Called().Get(0).(service.ItemService[model.Expense])
}

func (m *MockCaseService) Deadlines() service.ItemService[model.Deadline] {
	return m.Called().Get(0).(service.ItemService[model.Deadline])
}

func (m *MockCaseService) Evidence() service.ItemService[model.EvidenceItem] {
	return m.Called().Get(0).(service.ItemService[model.EvidenceItem])
}

// MockItemService mocks one auxiliary collection.
type MockItemService[T any] struct {
	mock.Mock
}

func (m *MockItemService[T]) Add(ctx context.Context, caseID string, item T) (*T, error) {
	args := m.Called(ctx, caseID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockItemService[T]) Update(ctx context.Context, caseID, itemID string, item T) (*T, error) {
	args := m.Called(ctx, caseID, itemID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockItemService[T]) Delete(ctx context.Context, caseID, itemID string) error {
	args := m.Called(ctx, caseID, itemID)
	return args.Error(0)
}
