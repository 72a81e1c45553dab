// Package organizer assigns categories and canonical names to captured documents.
package organizer

import (
	"strings"

	"casevault/internal/model"
)

// Rule maps a set of keywords to a category.
type Rule struct {
	Category model.DocumentCategory
	Keywords []string
}

// Order matters: inputs that hit several keyword sets resolve to the first
// rule that matches. Reordering changes the category of existing documents.
var rules = []Rule{
	{model.CategoryEvidence, []string{"photo", "picture", "image", "scene", "damage", "injury", "evidence"}},
	{model.CategoryCourtDocuments, []string{"court", "filing", "motion", "pleading", "summons", "subpoena", "order", "judgment"}},
	{model.CategoryCorrespondence, []string{"letter", "email", "correspondence", "communication"}},
	{model.CategoryMedicalRecords, []string{"medical", "doctor", "hospital", "health", "treatment", "diagnosis", "prescription"}},
	{model.CategoryPoliceReports, []string{"police", "officer", "report", "incident", "accident", "citation"}},
	{model.CategoryWitnessStatements, []string{"witness", "statement", "testimony", "affidavit"}},
	{model.CategoryContracts, []string{"contract", "agreement", "lease", "deed"}},
	{model.CategoryReceiptsExpenses, []string{"receipt", "expense", "payment", "invoice", "bill"}},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Categorize picks a category for a document from its name and description.
// Keywords match as substrings of the lower-cased text. Nothing matching
// yields CategoryOther.
func Categorize(name, description string) model.DocumentCategory {
	text := strings.ToLower(name + " " + description)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Category
			}
		}
	}
	return model.CategoryOther
}
