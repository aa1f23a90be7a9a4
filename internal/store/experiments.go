package store

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// ExperimentPatch is a partial experiment update; nil fields are left
// unchanged.
type ExperimentPatch struct {
	SubjectID   *string
	Title       *string
	Description *string
	Date        *time.Time
	Status      *models.ExperimentStatus
	LabNumber   *string
}

// AddExperiment stores a new experiment under a fresh id.
func (s *Store) AddExperiment(data models.Experiment) (*models.Experiment, error) {
	data.ID = uuid.NewString()
	s.experiments = append(s.experiments, data)
	return &data, s.persistExperiments()
}

// UpdateExperiment merges patch into the matching experiment. Unknown ids
// are a silent no-op.
func (s *Store) UpdateExperiment(id string, patch ExperimentPatch) error {
	for i := range s.experiments {
		if s.experiments[i].ID != id {
			continue
		}
		e := &s.experiments[i]
		if patch.SubjectID != nil {
			e.SubjectID = *patch.SubjectID
		}
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Status != nil {
			e.Status = *patch.Status
		}
		if patch.LabNumber != nil {
			e.LabNumber = *patch.LabNumber
		}
		return s.persistExperiments()
	}
	return nil
}

// DeleteExperiment removes the matching experiment, if any.
func (s *Store) DeleteExperiment(id string) error {
	before := len(s.experiments)
	s.experiments = slices.DeleteFunc(s.experiments, func(e models.Experiment) bool {
		return e.ID == id
	})
	if len(s.experiments) == before {
		return nil
	}
	return s.persistExperiments()
}

func (s *Store) persistExperiments() error {
	return persistCollection(s, storage.KeyExperiments, s.experiments)
}
