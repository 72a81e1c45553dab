package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"casevault/internal/model"
	"casevault/internal/organizer"
	"casevault/internal/repository"
	"casevault/internal/summary"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNameRequired        = errors.New("name is required")
	ErrURIRequired         = errors.New("uri is required")
	ErrInvalidCategory     = errors.New("invalid document category")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidPriority     = errors.New("priority must be high, medium or low")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrURIImmutable        = errors.New("document uri cannot be changed")
)

// CaseInput carries the editable header fields of a case.
type CaseInput struct {
	Name        string `json:"name"`
	CaseNumber  string `json:"caseNumber"`
	Description string `json:"description"`
}

type FolderInput struct {
	Name     string                 `json:"name"`
	Category model.DocumentCategory `json:"category"`
}

// CaptureInput describes a freshly captured document. Name and Description
// drive auto-categorization; the stored name is always generated.
type CaptureInput struct {
	Name        string
	Description string
	Type        model.DocumentType
	URI         string
	Tags        []string
	CustomName  string
	// Category overrides auto-categorization when set.
	Category model.DocumentCategory
}

// Preview is what CaptureDocument would assign, without storing anything.
type Preview struct {
	Category model.DocumentCategory `json:"category"`
	Name     string                 `json:"name"`
}

// CaseService defines the use cases for managing cases.
type CaseService interface {
	ListCases(ctx context.Context) ([]model.Case, error)
	GetCase(ctx context.Context, id string) (*model.Case, error)

	// CreateCase assigns a new id and creation date.
	CreateCase(ctx context.Context, in CaseInput) (*model.Case, error)

	// SaveCase replaces the stored case with c after validating every nested
	// category and document type. A stored document keeps its URI; changing
	// it fails with ErrURIImmutable.
	SaveCase(ctx context.Context, c *model.Case) error

	DeleteCase(ctx context.Context, id string) error

	CreateFolder(ctx context.Context, caseID string, in FolderInput) (*model.Folder, error)
	DeleteFolder(ctx context.Context, caseID, folderID string) error

	// CaptureDocument categorizes (unless in.Category is set), names and
	// stores a new document in the given folder.
	CaptureDocument(ctx context.Context, caseID, folderID string, in CaptureInput) (*model.Document, error)

	// RecategorizeDocument corrects a document's category. Name and URI are kept.
	RecategorizeDocument(ctx context.Context, caseID, folderID, docID string, category model.DocumentCategory) (*model.Document, error)

	DeleteDocument(ctx context.Context, caseID, folderID, docID string) error

	// Preview runs categorization and naming for the current time.
	Preview(name, description, customName string) Preview

	// Summary renders the plain-text report of a case.
	Summary(ctx context.Context, id string, detailed bool) (string, error)

	// ExportPDF writes the report of a case as PDF.
	ExportPDF(ctx context.Context, w io.Writer, id string, detailed bool) error

	Timeline() ItemService[model.TimelineEvent]
	VoiceNotes() ItemService[model.VoiceNote]
	Witnesses() ItemService[model.Witness]
	Expenses() ItemService[model.Expense]
	Deadlines() ItemService[model.Deadline]
	Evidence() ItemService[model.EvidenceItem]
}

type caseService struct {
	repo      repository.CaseRepository
	loc       *time.Location
	projector summary.Projector
	now       func() time.Time
}

// NewCaseService constructs a CaseService. Capture dates and summaries use
// loc (time.Local when nil).
func NewCaseService(repo repository.CaseRepository, loc *time.Location) CaseService {
	if loc == nil {
		loc = time.Local
	}
	return &caseService{
		repo:      repo,
		loc:       loc,
		projector: summary.Projector{Location: loc},
		now:       time.Now,
	}
}

// localNow is the capture clock in the configured zone, so generated names
// carry the user's calendar date.
func (s *caseService) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *caseService) projectorNow() summary.Projector {
	p := s.projector
	p.Now = s.localNow()
	return p
}

func (s *caseService) ListCases(ctx context.Context) ([]model.Case, error) {
	return s.repo.ListCases(ctx)
}

func (s *caseService) GetCase(ctx context.Context, id string) (*model.Case, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetCase(ctx, id)
}

func (s *caseService) CreateCase(ctx context.Context, in CaseInput) (*model.Case, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	c := &model.Case{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		CaseNumber:  strings.TrimSpace(in.CaseNumber),
		Description: in.Description,
		CreatedDate: s.localNow(),
		Folders:     []model.Folder{},
	}
	if err := s.repo.SaveCase(ctx, c); err != nil {
		return nil, fmt.Errorf("save case: %w", err)
	}
	return c, nil
}

func (s *caseService) SaveCase(ctx context.Context, c *model.Case) error {
	if c == nil || c.ID == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if err := validateCase(c); err != nil {
		return err
	}
	if c.Folders == nil {
		c.Folders = []model.Folder{}
	}

	err := s.repo.UpdateCase(ctx, c.ID, func(stored *model.Case) error {
		if err := checkURIs(stored, c); err != nil {
			return err
		}
		*stored = *c
		return nil
	})
	if errors.Is(err, repository.ErrCaseNotFound) {
		return s.repo.SaveCase(ctx, c)
	}
	return err
}

// checkURIs rejects any document in next whose URI differs from the stored
// document with the same id. Documents may move between folders.
func checkURIs(stored, next *model.Case) error {
	uris := make(map[string]string)
	for _, d := range stored.AllDocuments() {
		uris[d.ID] = d.URI
	}
	for _, d := range next.AllDocuments() {
		if uri, ok := uris[d.ID]; ok && uri != "" && uri != d.URI {
			return fmt.Errorf("document %q: %w", d.ID, ErrURIImmutable)
		}
	}
	return nil
}

func validateCase(c *model.Case) error {
	for _, f := range c.Folders {
		if !f.Category.Valid() {
			return fmt.Errorf("folder %q: %w", f.ID, ErrInvalidCategory)
		}
		for _, d := range f.Documents {
			if !d.Category.Valid() {
				return fmt.Errorf("document %q: %w", d.ID, ErrInvalidCategory)
			}
			if !d.Type.Valid() {
				return fmt.Errorf("document %q: %w", d.ID, ErrInvalidDocumentType)
			}
		}
	}
	for _, d := range c.Deadlines {
		if !validPriority(d.Priority) {
			return fmt.Errorf("deadline %q: %w", d.ID, ErrInvalidPriority)
		}
	}
	return nil
}

func (s *caseService) DeleteCase(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.DeleteCase(ctx, id)
}

func (s *caseService) CreateFolder(ctx context.Context, caseID string, in FolderInput) (*model.Folder, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	f := model.Folder{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		CreatedDate: s.localNow(),
		Documents:   []model.Document{},
	}
	if err := s.repo.CreateFolder(ctx, caseID, f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *caseService) DeleteFolder(ctx context.Context, caseID, folderID string) error {
	if caseID == "" || folderID == "" {
		return ErrIDRequired
	}
	return s.repo.DeleteFolder(ctx, caseID, folderID)
}

func (s *caseService) CaptureDocument(ctx context.Context, caseID, folderID string, in CaptureInput) (*model.Document, error) {
	if caseID == "" || folderID == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(in.URI) == "" {
		return nil, ErrURIRequired
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidDocumentType
	}

	category := in.Category
	switch {
	case category == 0:
		category = organizer.Categorize(in.Name, in.Description)
	case !category.Valid():
		return nil, ErrInvalidCategory
	}

	captured := s.localNow()
	doc := model.Document{
		ID:          uuid.NewString(),
		Name:        organizer.GenerateName(category, captured, in.CustomName),
		Type:        in.Type,
		Category:    category,
		URI:         in.URI,
		Date:        captured,
		Description: in.Description,
		Tags:        in.Tags,
		FolderID:    folderID,
	}
	if err := s.repo.AddDocumentToFolder(ctx, caseID, folderID, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *caseService) RecategorizeDocument(ctx context.Context, caseID, folderID, docID string, category model.DocumentCategory) (*model.Document, error) {
	if caseID == "" || folderID == "" || docID == "" {
		return nil, ErrIDRequired
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	var out model.Document
	err := s.repo.UpdateCase(ctx, caseID, func(c *model.Case) error {
		d, err := findDocument(c, folderID, docID)
		if err != nil {
			return err
		}
		d.Category = category
		out = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *caseService) DeleteDocument(ctx context.Context, caseID, folderID, docID string) error {
	if caseID == "" || folderID == "" || docID == "" {
		return ErrIDRequired
	}
	return s.repo.UpdateCase(ctx, caseID, func(c *model.Case) error {
		fi := c.FolderIndex(folderID)
		if fi < 0 {
			return repository.ErrFolderNotFound
		}
		docs := c.Folders[fi].Documents
		for i := range docs {
			if docs[i].ID == docID {
				c.Folders[fi].Documents = append(docs[:i], docs[i+1:]...)
				return nil
			}
		}
		return ErrDocumentNotFound
	})
}

func findDocument(c *model.Case, folderID, docID string) (*model.Document, error) {
	fi := c.FolderIndex(folderID)
	if fi < 0 {
		return nil, repository.ErrFolderNotFound
	}
	docs := c.Folders[fi].Documents
	for i := range docs {
		if docs[i].ID == docID {
			return &docs[i], nil
		}
	}
	return nil, ErrDocumentNotFound
}

func (s *caseService) Preview(name, description, customName string) Preview {
	category := organizer.Categorize(name, description)
	return Preview{
		Category: category,
		Name:     organizer.GenerateName(category, s.localNow(), customName),
	}
}

func (s *caseService) Summary(ctx context.Context, id string, detailed bool) (string, error) {
	c, err := s.GetCase(ctx, id)
	if err != nil {
		return "", err
	}
	if detailed {
		return s.projectorNow().SummarizeDetailed(*c), nil
	}
	return s.projectorNow().Summarize(*c), nil
}

func (s *caseService) ExportPDF(ctx context.Context, w io.Writer, id string, detailed bool) error {
	c, err := s.GetCase(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projectorNow().WritePDF(w, *c, detailed); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
