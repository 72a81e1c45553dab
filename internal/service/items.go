package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"casevault/internal/model"
)

// ItemService manages one auxiliary list of a case (timeline, witnesses,
// expenses and so on). Every mutation is a single atomic case update.
type ItemService[T any] interface {
	// Add assigns a fresh id and appends item.
	Add(ctx context.Context, caseID string, item T) (*T, error)
	// Update replaces the item with id itemID in place, keeping its id.
	Update(ctx context.Context, caseID, itemID string, item T) (*T, error)
	// Delete removes the item, or returns ErrItemNotFound.
	Delete(ctx context.Context, caseID, itemID string) error
}

// collection binds an ItemService to one slice of model.Case.
type collection[T any] struct {
	list func(c *model.Case) *[]T
	id   func(item *T) *string
	// prepare validates the item and fills defaults such as a missing date.
	prepare func(item *T, now time.Time) error
}

type itemService[T any] struct {
	svc  *caseService
	coll collection[T]
}

func (s *itemService[T]) Add(ctx context.Context, caseID string, item T) (*T, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	*s.coll.id(&item) = uuid.NewString()
	if err := s.coll.prepare(&item, s.svc.localNow()); err != nil {
		return nil, err
	}
	err := s.svc.repo.UpdateCase(ctx, caseID, func(c *model.Case) error {
		list := s.coll.list(c)
		*list = append(*list, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *itemService[T]) Update(ctx context.Context, caseID, itemID string, item T) (*T, error) {
	if caseID == "" || itemID == "" {
		return nil, ErrIDRequired
	}
	*s.coll.id(&item) = itemID
	if err := s.coll.prepare(&item, s.svc.localNow()); err != nil {
		return nil, err
	}
	err := s.svc.repo.UpdateCase(ctx, caseID, func(c *model.Case) error {
		list := *s.coll.list(c)
		for i := range list {
			if *s.coll.id(&list[i]) == itemID {
				list[i] = item
				return nil
			}
		}
		return ErrItemNotFound
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *itemService[T]) Delete(ctx context.Context, caseID, itemID string) error {
	if caseID == "" || itemID == "" {
		return ErrIDRequired
	}
	return s.svc.repo.UpdateCase(ctx, caseID, func(c *model.Case) error {
		list := s.coll.list(c)
		for i := range *list {
			if *s.coll.id(&(*list)[i]) == itemID {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
}

func (s *caseService) Timeline() ItemService[model.TimelineEvent] {
	return &itemService[model.TimelineEvent]{svc: s, coll: timelineItems}
}

func (s *caseService) VoiceNotes() ItemService[model.VoiceNote] {
	return &itemService[model.VoiceNote]{svc: s, coll: voiceNoteItems}
}

func (s *caseService) Witnesses() ItemService[model.Witness] {
	return &itemService[model.Witness]{svc: s, coll: witnessItems}
}

func (s *caseService) Expenses() ItemService[model.Expense] {
	return &itemService[model.Expense]{svc: s, coll: expenseItems}
}

func (s *caseService) Deadlines() ItemService[model.Deadline] {
	return &itemService[model.Deadline]{svc: s, coll: deadlineItems}
}

func (s *caseService) Evidence() ItemService[model.EvidenceItem] {
	return &itemService[model.EvidenceItem]{svc: s, coll: evidenceItems}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func defaultDate(t *time.Time, now time.Time) {
	if t.IsZero() {
		*t = now
	}
}

var timelineItems = collection[model.TimelineEvent]{
	list: func(c *model.Case) *[]model.TimelineEvent { return &c.TimelineEvents },
	id:   func(e *model.TimelineEvent) *string { return &e.ID },
	prepare: func(e *model.TimelineEvent, now time.Time) error {
		if blank(e.Title) {
			return ErrNameRequired
		}
		defaultDate(&e.Date, now)
		return nil
	},
}

var voiceNoteItems = collection[model.VoiceNote]{
	list: func(c *model.Case) *[]model.VoiceNote { return &c.VoiceNotes },
	id:   func(v *model.VoiceNote) *string { return &v.ID },
	prepare: func(v *model.VoiceNote, now time.Time) error {
		if blank(v.Title) {
			return ErrNameRequired
		}
		if blank(v.URI) {
			return ErrURIRequired
		}
		defaultDate(&v.Date, now)
		return nil
	},
}

var witnessItems = collection[model.Witness]{
	list: func(c *model.Case) *[]model.Witness { return &c.Witnesses },
	id:   func(w *model.Witness) *string { return &w.ID },
	prepare: func(w *model.Witness, _ time.Time) error {
		if blank(w.Name) {
			return ErrNameRequired
		}
		return nil
	},
}

var expenseItems = collection[model.Expense]{
	list: func(c *model.Case) *[]model.Expense { return &c.Expenses },
	id:   func(e *model.Expense) *string { return &e.ID },
	prepare: func(e *model.Expense, now time.Time) error {
		if blank(e.Description) {
			return ErrNameRequired
		}
		defaultDate(&e.Date, now)
		return nil
	},
}

var deadlineItems = collection[model.Deadline]{
	list: func(c *model.Case) *[]model.Deadline { return &c.Deadlines },
	id:   func(d *model.Deadline) *string { return &d.ID },
	prepare: func(d *model.Deadline, _ time.Time) error {
		if blank(d.Title) {
			return ErrNameRequired
		}
		if !validPriority(d.Priority) {
			return ErrInvalidPriority
		}
		return nil
	},
}

var evidenceItems = collection[model.EvidenceItem]{
	list: func(c *model.Case) *[]model.EvidenceItem { return &c.Evidence },
	id:   func(e *model.EvidenceItem) *string { return &e.ID },
	prepare: func(e *model.EvidenceItem, now time.Time) error {
		if blank(e.Title) {
			return ErrNameRequired
		}
		defaultDate(&e.Date, now)
		return nil
	},
}

func validPriority(p string) bool {
	switch p {
	case "", "high", "medium", "low":
		return true
	}
	return false
}
