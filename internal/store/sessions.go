package store

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// StudySessionPatch is a partial session update; nil fields are left
// unchanged.
type StudySessionPatch struct {
	SubjectID *string
	Date      *time.Time
	Duration  *int
	Topic     *string
}

// AddStudySession stores a new session under a fresh id. Sessions are not
// part of the subject cascade: they outlive their subject.
func (s *Store) AddStudySession(data models.StudySession) (*models.StudySession, error) {
	data.ID = uuid.NewString()
	s.studySessions = append(s.studySessions, data)
	return &data, s.persistStudySessions()
}

// UpdateStudySession merges patch into the matching session. Unknown ids are
// a silent no-op.
func (s *Store) UpdateStudySession(id string, patch StudySessionPatch) error {
	for i := range s.studySessions {
		if s.studySessions[i].ID != id {
			continue
		}
		sess := &s.studySessions[i]
		if patch.SubjectID != nil {
			sess.SubjectID = *patch.SubjectID
		}
		if patch.Date != nil {
			sess.Date = *patch.Date
		}
		if patch.Duration != nil {
			sess.Duration = *patch.Duration
		}
		if patch.Topic != nil {
			sess.Topic = *patch.Topic
		}
		return s.persistStudySessions()
	}
	return nil
}

// DeleteStudySession removes the matching session, if any.
func (s *Store) DeleteStudySession(id string) error {
	before := len(s.studySessions)
	s.studySessions = slices.DeleteFunc(s.studySessions, func(sess models.StudySession) bool {
		return sess.ID == id
	})
	if len(s.studySessions) == before {
		return nil
	}
	return s.persistStudySessions()
}

func (s *Store) persistStudySessions() error {
	return persistCollection(s, storage.KeyStudySessions, s.studySessions)
}
