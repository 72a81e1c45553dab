// Package summary renders read-only, human-readable reports of a case.
// Output is deterministic: the same case always yields the same bytes.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"casevault/internal/model"
)

// Section headings.
const (
	HeadingTimeline  = "TIMELINE OF EVENTS"
	HeadingDocuments = "DOCUMENTS"
	HeadingWitnesses = "WITNESSES"
	HeadingExpenses  = "EXPENSES"
	HeadingDeadlines = "DEADLINES"
)

const dateLayout = "Jan 2, 2006"

// Projector renders dates in Location (UTC when nil). When Now is set, open
// deadlines also show how many days remain.
type Projector struct {
	Location *time.Location
	Now      time.Time
}

// Summarize renders a case with UTC dates.
func Summarize(c model.Case) string { return Projector{}.Summarize(c) }

// SummarizeDetailed is Summarize plus a per-folder document listing.
func SummarizeDetailed(c model.Case) string { return Projector{}.SummarizeDetailed(c) }

func (p Projector) Summarize(c model.Case) string {
	return p.render(c, false)
}

func (p Projector) SummarizeDetailed(c model.Case) string {
	return p.render(c, true)
}

// Lines returns the report split into lines, for renderers that lay out
// text themselves.
func (p Projector) Lines(c model.Case, detailed bool) []string {
	return strings.Split(strings.TrimSuffix(p.render(c, detailed), "\n"), "\n")
}

func (p Projector) render(c model.Case, detailed bool) string {
	sections := [][]string{p.header(c)}
	for _, s := range [][]string{
		p.timeline(c),
		p.documents(c, detailed),
		witnesses(c),
		expenses(c),
		p.deadlines(c),
	} {
		if len(s) > 0 {
			sections = append(sections, s)
		}
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, line := range s {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p Projector) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Projector) date(t time.Time) string {
	return t.In(p.location()).Format(dateLayout)
}

func (p Projector) header(c model.Case) []string {
	lines := []string{"CASE SUMMARY: " + c.Name}
	if c.CaseNumber != "" {
		lines = append(lines, "Case Number: "+c.CaseNumber)
	}
	lines = append(lines, "Created: "+p.date(c.CreatedDate))
	if c.Description != "" {
		lines = append(lines, "Description: "+c.Description)
	}
	return lines
}

func (p Projector) timeline(c model.Case) []string {
	if len(c.TimelineEvents) == 0 {
		return nil
	}
	events := append([]model.TimelineEvent(nil), c.TimelineEvents...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	lines := []string{HeadingTimeline}
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("- %s: %s", p.date(e.Date), e.Title))
		if e.Description != "" {
			lines = append(lines, "  "+e.Description)
		}
	}
	return lines
}

func (p Projector) documents(c model.Case, detailed bool) []string {
	docs := c.AllDocuments()
	if len(docs) == 0 {
		return nil
	}

	counts := make(map[model.DocumentCategory]int)
	for _, d := range docs {
		counts[d.Category]++
	}

	lines := []string{fmt.Sprintf("%s (%d)", HeadingDocuments, len(docs))}
	for _, cat := range model.Categories() {
		if n := counts[cat]; n > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", cat.Label(), n))
		}
	}
	if !detailed {
		return lines
	}

	for _, f := range c.Folders {
		lines = append(lines, "", fmt.Sprintf("%s (%s)", f.Name, f.Category.Label()))
		if len(f.Documents) == 0 {
			lines = append(lines, "  (no documents)")
			continue
		}
		for _, d := range sortedDocuments(f.Documents) {
			line := fmt.Sprintf("  - %s (%s, %s)", d.Name, d.Category.Label(), p.date(d.Date))
			if d.Description != "" {
				line += ": " + d.Description
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func sortedDocuments(docs []model.Document) []model.Document {
	out := append([]model.Document(nil), docs...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func witnesses(c model.Case) []string {
	if len(c.Witnesses) == 0 {
		return nil
	}
	lines := []string{HeadingWitnesses}
	for _, w := range c.Witnesses {
		line := "- " + w.Name
		if w.Phone != "" {
			line += " (" + w.Phone + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func expenses(c model.Case) []string {
	if len(c.Expenses) == 0 {
		return nil
	}
	var total, reimbursable int64
	for _, e := range c.Expenses {
		cents := toCents(e.Amount)
		total += cents
		if e.Reimbursable {
			reimbursable += cents
		}
	}
	return []string{
		HeadingExpenses,
		"Total: " + FormatCents(total),
		"Reimbursable: " + FormatCents(reimbursable),
	}
}

func (p Projector) deadlines(c model.Case) []string {
	if len(c.Deadlines) == 0 {
		return nil
	}
	ds := append([]model.Deadline(nil), c.Deadlines...)
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].DueDate.Before(ds[j].DueDate) })

	lines := []string{HeadingDeadlines}
	for _, d := range ds {
		line := fmt.Sprintf("- %s: %s", p.date(d.DueDate), d.Title)
		switch {
		case d.Completed:
			line += " [completed]"
		case !p.Now.IsZero():
			line += " " + remaining(d.DaysRemaining(p.Now.In(p.location())))
		}
		lines = append(lines, line)
	}
	return lines
}

func remaining(days int) string {
	switch {
	case days == 0:
		return "(due today)"
	case days == 1:
		return "(1 day left)"
	case days > 1:
		return fmt.Sprintf("(%d days left)", days)
	case days == -1:
		return "(1 day overdue)"
	default:
		return fmt.Sprintf("(%d days overdue)", -days)
	}
}

// Amounts are summed in whole cents so repeated additions do not drift.
func toCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// FormatCents renders cents as dollars, e.g. 1500 -> "$15.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
