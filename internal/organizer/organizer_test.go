package organizer

import (
	"sort"
	"testing"
	"time"

	"casevault/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		docName     string
		description string
		want        model.DocumentCategory
	}{
		{"single keyword evidence", "car accident photo", "", model.CategoryEvidence},
		{"police keyword", "Police traffic stop citation", "", model.CategoryPoliceReports},
		{"evidence beats police", "photo of the damage from the accident", "", model.CategoryEvidence},
		{"police report without evidence words", "police report of accident", "", model.CategoryPoliceReports},
		{"court beats medical", "court order for medical records", "", model.CategoryCourtDocuments},
		{"correspondence beats medical", "hospital email", "", model.CategoryCorrespondence},
		{"correspondence beats witness", "witness statement letter", "", model.CategoryCorrespondence},
		{"medical beats receipts", "doctor bill", "", model.CategoryMedicalRecords},
		{"police beats witness", "officer statement", "", model.CategoryPoliceReports},
		{"contracts beats receipts", "lease agreement receipt", "", model.CategoryContracts},
		{"witness", "signed affidavit", "", model.CategoryWitnessStatements},
		{"receipts", "Parking Invoice", "", model.CategoryReceiptsExpenses},
		{"description participates", "IMG_0001", "scene of the crash", model.CategoryEvidence},
		{"case folded", "SUBPOENA", "", model.CategoryCourtDocuments},
		{"substring match", "tape recorder transcript", "", model.CategoryCourtDocuments},
		{"fallback", "grocery list", "", model.CategoryOther},
		{"empty", "", "", model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.docName, tt.description))
		})
	}
}

func TestRules_OrderAndCopy(t *testing.T) {
	got := Rules()
	order := make([]model.DocumentCategory, len(got))
	for i, r := range got {
		order[i] = r.Category
	}
	assert.Equal(t, []model.DocumentCategory{
		model.CategoryEvidence,
		model.CategoryCourtDocuments,
		model.CategoryCorrespondence,
		model.CategoryMedicalRecords,
		model.CategoryPoliceReports,
		model.CategoryWitnessStatements,
		model.CategoryContracts,
		model.CategoryReceiptsExpenses,
	}, order)

	got[0].Keywords[0] = "mutated"
	assert.Equal(t, "photo", Rules()[0].Keywords[0])
}

func TestGenerateName(t *testing.T) {
	date := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "EVIDENCE_2025-03-07_intake", GenerateName(model.CategoryEvidence, date, "intake"))
	assert.Equal(t, "RECEIPTS_&_EXPENSES_2025-01-01",
		GenerateName(model.CategoryReceiptsExpenses, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ""))
	assert.Equal(t, "COURT_DOCUMENTS_2025-03-07", GenerateName(model.CategoryCourtDocuments, date, "   "))
}

func TestGenerateName_LocalCalendarDate(t *testing.T) {
	eastern := time.FixedZone("EST", -5*60*60)
	lateEvening := time.Date(2025, 3, 7, 23, 30, 0, 0, eastern)

	assert.Equal(t, "OTHER_2025-03-07", GenerateName(model.CategoryOther, lateEvening, ""))
	assert.Equal(t, "OTHER_2025-03-08", GenerateName(model.CategoryOther, lateEvening.UTC(), ""))
}

func TestGenerateName_SortsByCategoryThenDate(t *testing.T) {
	names := []string{
		GenerateName(model.CategoryEvidence, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), ""),
		GenerateName(model.CategoryContracts, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ""),
		GenerateName(model.CategoryEvidence, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ""),
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"CONTRACTS_2024-01-01",
		"EVIDENCE_2024-12-31",
		"EVIDENCE_2025-05-01",
	}, names)
}
