package model

import (
	"fmt"
	"strings"
)

// DocumentCategory classifies documents and labels folders.
// The zero value is not a valid category.
type DocumentCategory int

const (
	CategoryEvidence DocumentCategory = iota + 1
	CategoryCourtDocuments
	CategoryCorrespondence
	CategoryMedicalRecords
	CategoryPoliceReports
	CategoryWitnessStatements
	CategoryContracts
	CategoryReceiptsExpenses
	CategoryPhotographicEvidence
	CategoryOther
)

// Categories returns every category in display order.
func Categories() []DocumentCategory {
	return []DocumentCategory{
		CategoryEvidence,
		CategoryCourtDocuments,
		CategoryCorrespondence,
		CategoryMedicalRecords,
		CategoryPoliceReports,
		CategoryWitnessStatements,
		CategoryContracts,
		CategoryReceiptsExpenses,
		CategoryPhotographicEvidence,
		CategoryOther,
	}
}

// Label returns the user-facing name, which is also the stored form.
func (c DocumentCategory) Label() string {
	switch c {
	case CategoryEvidence:
		return "Evidence"
	case CategoryCourtDocuments:
		return "Court Documents"
	case CategoryCorrespondence:
		return "Correspondence"
	case CategoryMedicalRecords:
		return "Medical Records"
	case CategoryPoliceReports:
		return "Police Reports"
	case CategoryWitnessStatements:
		return "Witness Statements"
	case CategoryContracts:
		return "Contracts"
	case CategoryReceiptsExpenses:
		return "Receipts & Expenses"
	case CategoryPhotographicEvidence:
		return "Photographic Evidence"
	case CategoryOther:
		return "Other"
	}
	return ""
}

func (c DocumentCategory) String() string {
	if l := c.Label(); l != "" {
		return l
	}
	return fmt.Sprintf("DocumentCategory(%d)", int(c))
}

// Valid reports whether c is one of the declared categories.
func (c DocumentCategory) Valid() bool {
	return c.Label() != ""
}

// ParseCategory resolves a label case-insensitively.
func ParseCategory(label string) (DocumentCategory, bool) {
	label = strings.TrimSpace(label)
	for _, c := range Categories() {
		if strings.EqualFold(c.Label(), label) {
			return c, true
		}
	}
	return 0, false
}

// MarshalText encodes the category as its label.
func (c DocumentCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal category: invalid value %d", int(c))
	}
	return []byte(c.Label()), nil
}

// UnmarshalText decodes a label. Labels this build does not know map to
// CategoryOther so archives written by newer clients stay readable.
func (c *DocumentCategory) UnmarshalText(b []byte) error {
	if parsed, ok := ParseCategory(string(b)); ok {
		*c = parsed
		return nil
	}
	*c = CategoryOther
	return nil
}

// DocumentType is the captured artifact's media kind.
type DocumentType string

const (
	DocumentTypePDF   DocumentType = "pdf"
	DocumentTypeImage DocumentType = "image"
	DocumentTypePhoto DocumentType = "photo"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypePDF, DocumentTypeImage, DocumentTypePhoto:
		return true
	}
	return false
}
