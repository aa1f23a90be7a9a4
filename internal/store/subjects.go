package store

import (
	"slices"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// SubjectPatch is a partial subject update; nil fields are left unchanged.
type SubjectPatch struct {
	Name      *string
	Code      *string
	Color     *models.SubjectColor
	Professor *string
	Credits   *int
}

// AddSubject stores a new subject under a fresh id.
func (s *Store) AddSubject(data models.Subject) (*models.Subject, error) {
	data.ID = uuid.NewString()
	s.subjects = append(s.subjects, data)
	return &data, s.persistSubjects()
}

// UpdateSubject merges patch into the matching subject. Unknown ids are a
// silent no-op.
func (s *Store) UpdateSubject(id string, patch SubjectPatch) error {
	for i := range s.subjects {
		if s.subjects[i].ID != id {
			continue
		}
		sub := &s.subjects[i]
		if patch.Name != nil {
			sub.Name = *patch.Name
		}
		if patch.Code != nil {
			sub.Code = *patch.Code
		}
		if patch.Color != nil {
			sub.Color = *patch.Color
		}
		if patch.Professor != nil {
			sub.Professor = *patch.Professor
		}
		if patch.Credits != nil {
			sub.Credits = *patch.Credits
		}
		return s.persistSubjects()
	}
	return nil
}

// DeleteSubject removes the subject and cascades to every assignment,
// experiment, timetable slot and chapter referencing it. Study sessions are
// deliberately exempt so past study history survives a subject cleanup.
func (s *Store) DeleteSubject(id string) error {
	before := len(s.subjects)
	s.subjects = slices.DeleteFunc(s.subjects, func(sub models.Subject) bool {
		return sub.ID == id
	})
	if len(s.subjects) == before {
		return nil
	}

	s.assignments = slices.DeleteFunc(s.assignments, func(a models.Assignment) bool {
		return a.SubjectID == id
	})
	s.experiments = slices.DeleteFunc(s.experiments, func(e models.Experiment) bool {
		return e.SubjectID == id
	})
	s.timetable = slices.DeleteFunc(s.timetable, func(t models.TimetableSlot) bool {
		return t.SubjectID == id
	})
	s.chapters = slices.DeleteFunc(s.chapters, func(c models.Chapter) bool {
		return c.SubjectID == id
	})

	if err := s.persistSubjects(); err != nil {
		return err
	}
	if err := s.persistAssignments(); err != nil {
		return err
	}
	if err := s.persistExperiments(); err != nil {
		return err
	}
	if err := s.persistTimetable(); err != nil {
		return err
	}
	return s.persistChapters()
}

// GetSubjectByID returns the matching subject, or nil.
func (s *Store) GetSubjectByID(id string) *models.Subject {
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			sub := s.subjects[i]
			return &sub
		}
	}
	return nil
}

func (s *Store) persistSubjects() error {
	return persistCollection(s, storage.KeySubjects, s.subjects)
}
