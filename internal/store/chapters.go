package store

import (
	"slices"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// ChapterPatch is a partial chapter update; nil fields are left unchanged.
type ChapterPatch struct {
	SubjectID   *string
	Title       *string
	Description *string
	Order       *int
	Status      *models.WorkStatus
}

// AddChapter stores a new chapter under a fresh id. A zero Order is
// replaced with the next free position for the subject.
func (s *Store) AddChapter(data models.Chapter) (*models.Chapter, error) {
	data.ID = uuid.NewString()
	if data.Order == 0 {
		data.Order = s.NextChapterOrder(data.SubjectID)
	}
	s.chapters = append(s.chapters, data)
	return &data, s.persistChapters()
}

// UpdateChapter merges patch into the matching chapter. Unknown ids are a
// silent no-op.
func (s *Store) UpdateChapter(id string, patch ChapterPatch) error {
	for i := range s.chapters {
		if s.chapters[i].ID != id {
			continue
		}
		c := &s.chapters[i]
		if patch.SubjectID != nil {
			c.SubjectID = *patch.SubjectID
		}
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Order != nil {
			c.Order = *patch.Order
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		return s.persistChapters()
	}
	return nil
}

// DeleteChapter removes the matching chapter, if any.
func (s *Store) DeleteChapter(id string) error {
	before := len(s.chapters)
	s.chapters = slices.DeleteFunc(s.chapters, func(c models.Chapter) bool {
		return c.ID == id
	})
	if len(s.chapters) == before {
		return nil
	}
	return s.persistChapters()
}

// ChaptersBySubject returns the subject's chapters sorted ascending by
// Order, regardless of insertion order.
func (s *Store) ChaptersBySubject(subjectID string) []models.Chapter {
	var out []models.Chapter
	for _, c := range s.chapters {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b models.Chapter) int {
		return a.Order - b.Order
	})
	return out
}

// NextChapterOrder returns max existing order for the subject plus one, or 1
// when the subject has no chapters.
func (s *Store) NextChapterOrder(subjectID string) int {
	next := 1
	for _, c := range s.chapters {
		if c.SubjectID == subjectID && c.Order >= next {
			next = c.Order + 1
		}
	}
	return next
}

func (s *Store) persistChapters() error {
	return persistCollection(s, storage.KeyChapters, s.chapters)
}
