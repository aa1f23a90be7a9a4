package store

import (
	"slices"

	"github.com/google/uuid"

	"studydesk/internal/models"
	"studydesk/internal/storage"
)

// TimetableSlotPatch is a partial slot update; nil fields are left
// unchanged.
type TimetableSlotPatch struct {
	SubjectID *string
	Day       *models.Weekday
	StartTime *string
	EndTime   *string
	Room      *string
}

// AddTimetableSlot stores a new slot under a fresh id.
func (s *Store) AddTimetableSlot(data models.TimetableSlot) (*models.TimetableSlot, error) {
	data.ID = uuid.NewString()
	s.timetable = append(s.timetable, data)
	return &data, s.persistTimetable()
}

// UpdateTimetableSlot merges patch into the matching slot. Unknown ids are a
// silent no-op.
func (s *Store) UpdateTimetableSlot(id string, patch TimetableSlotPatch) error {
	for i := range s.timetable {
		if s.timetable[i].ID != id {
			continue
		}
		t := &s.timetable[i]
		if patch.SubjectID != nil {
			t.SubjectID = *patch.SubjectID
		}
		if patch.Day != nil {
			t.Day = *patch.Day
		}
		if patch.StartTime != nil {
			t.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			t.EndTime = *patch.EndTime
		}
		if patch.Room != nil {
			t.Room = *patch.Room
		}
		return s.persistTimetable()
	}
	return nil
}

// DeleteTimetableSlot removes the matching slot, if any.
func (s *Store) DeleteTimetableSlot(id string) error {
	before := len(s.timetable)
	s.timetable = slices.DeleteFunc(s.timetable, func(t models.TimetableSlot) bool {
		return t.ID == id
	})
	if len(s.timetable) == before {
		return nil
	}
	return s.persistTimetable()
}

func (s *Store) persistTimetable() error {
	return persistCollection(s, storage.KeyTimetable, s.timetable)
}
