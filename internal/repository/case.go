package repository

import (
	"context"
	"errors"

	"casevault/internal/model"
)

var (
	ErrCaseNotFound   = errors.New("case not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderExists   = errors.New("folder already exists")
)

// CaseRepository is the only read/write gateway to the case archive.
// Cases are stored and returned as whole aggregates; there are no field
// patches. Implementations serialize writes so concurrent saves never drop
// each other's updates.
type CaseRepository interface {
	// ListCases returns every case in insertion order with all dates revived.
	ListCases(ctx context.Context) ([]model.Case, error)

	// GetCase returns one case or ErrCaseNotFound.
	GetCase(ctx context.Context, id string) (*model.Case, error)

	// SaveCase inserts the case or replaces the stored case with the same ID.
	// A replaced case keeps its position in the archive.
	SaveCase(ctx context.Context, c *model.Case) error

	// DeleteCase removes the case and everything nested in it.
	// Deleting an unknown ID is a no-op.
	DeleteCase(ctx context.Context, id string) error

	// UpdateCase applies fn to the stored case and saves the result atomically.
	// If fn returns an error nothing is written and the error is returned.
	UpdateCase(ctx context.Context, id string, fn func(c *model.Case) error) error

	// CreateFolder appends a folder to a case.
	// Returns ErrCaseNotFound, or ErrFolderExists when the ID is taken.
	CreateFolder(ctx context.Context, caseID string, folder model.Folder) error

	// AddDocumentToFolder appends a document to a folder and stamps its FolderID.
	// Returns ErrCaseNotFound or ErrFolderNotFound.
	AddDocumentToFolder(ctx context.Context, caseID, folderID string, doc model.Document) error

	// DeleteFolder removes a folder and its documents.
	// Returns ErrCaseNotFound; an unknown folder is a no-op.
	DeleteFolder(ctx context.Context, caseID, folderID string) error
}
