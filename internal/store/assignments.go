package store

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// AssignmentPatch is a partial assignment update; nil fields are left
// unchanged.
type AssignmentPatch struct {
	SubjectID   *string
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.WorkStatus
	Priority    *models.Priority
}

// AddAssignment stores a new assignment under a fresh id.
func (s *Store) AddAssignment(data models.Assignment) (*models.Assignment, error) {
	data.ID = uuid.NewString()
	s.assignments = append(s.assignments, data)
	return &data, s.persistAssignments()
}

// UpdateAssignment merges patch into the matching assignment. Unknown ids
// are a silent no-op.
func (s *Store) UpdateAssignment(id string, patch AssignmentPatch) error {
	for i := range s.assignments {
		if s.assignments[i].ID != id {
			continue
		}
		a := &s.assignments[i]
		if patch.SubjectID != nil {
			a.SubjectID = *patch.SubjectID
		}
		if patch.Title != nil {
			a.Title = *patch.Title
		}
		if patch.Description != nil {
			a.Description = *patch.Description
		}
		if patch.DueDate != nil {
			a.DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.Priority != nil {
			a.Priority = *patch.Priority
		}
		return s.persistAssignments()
	}
	return nil
}

// DeleteAssignment removes the matching assignment, if any.
func (s *Store) DeleteAssignment(id string) error {
	before := len(s.assignments)
	s.assignments = slices.DeleteFunc(s.assignments, func(a models.Assignment) bool {
		return a.ID == id
	})
	if len(s.assignments) == before {
		return nil
	}
	return s.persistAssignments()
}

func (s *Store) persistAssignments() error {
	return persistCollection(s, storage.KeyAssignments, s.assignments)
}
