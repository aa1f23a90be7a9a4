// Package store owns the six academic collections. It is the single source
// of truth in memory and writes every collection back to the storage backend
// after each mutation, as one versioned JSON document per collection.
package store

import (
	"encoding/json"
	"slices"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

const envelopeVersion = 1

// envelope is the on-disk shape of one collection.
type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// Store holds all collections in memory and mirrors mutations to the
// backend. It is not safe for concurrent use; there is exactly one caller.
type Store struct {
	backend storage.Backend

	subjects      []models.Subject
	assignments   []models.Assignment
	experiments   []models.Experiment
	timetable     []models.TimetableSlot
	studySessions []models.StudySession
	chapters      []models.Chapter
}

// New loads every collection from the backend. Absent or unreadable entries
// initialize to empty; a broken database never prevents startup.
func New(backend storage.Backend) *Store {
	s := &Store{backend: backend}
	loadCollection(s, storage.KeySubjects, &s.subjects)
	loadCollection(s, storage.KeyAssignments, &s.assignments)
	loadCollection(s, storage.KeyExperiments, &s.experiments)
	loadCollection(s, storage.KeyTimetable, &s.timetable)
	loadCollection(s, storage.KeyStudySessions, &s.studySessions)
	loadCollection(s, storage.KeyChapters, &s.chapters)
	return s
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func loadCollection[T any](s *Store, key string, dst *[]T) {
	raw, err := s.backend.Load(key)
	if err != nil || len(raw) == 0 {
		return
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != envelopeVersion {
		return
	}
	var records []T
	if err := json.Unmarshal(env.Records, &records); err != nil {
		return
	}
	*dst = records
}

func persistCollection[T any](s *Store, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Version: envelopeVersion, Records: raw})
	if err != nil {
		return err
	}
	return s.backend.Store(key, data)
}

// Subjects returns a copy of the subject collection.
func (s *Store) Subjects() []models.Subject {
	return slices.Clone(s.subjects)
}

// Assignments returns a copy of the assignment collection.
func (s *Store) Assignments() []models.Assignment {
	return slices.Clone(s.assignments)
}

// Experiments returns a copy of the experiment collection.
func (s *Store) Experiments() []models.Experiment {
	return slices.Clone(s.experiments)
}

// Timetable returns a copy of the timetable collection.
func (s *Store) Timetable() []models.TimetableSlot {
	return slices.Clone(s.timetable)
}

// StudySessions returns a copy of the study-session collection.
func (s *Store) StudySessions() []models.StudySession {
	return slices.Clone(s.studySessions)
}

// Chapters returns a copy of the chapter collection.
func (s *Store) Chapters() []models.Chapter {
	return slices.Clone(s.chapters)
}
