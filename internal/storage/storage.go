// Package storage is the durable key-value layer underneath the academic
// store. Each collection lives under a fixed key as one JSON document; the
// store overwrites the whole document on every mutation.
package storage

import "fmt"

// Collection keys. These are part of the on-disk format and must not change.
const (
	KeySubjects      = "academic_subjects"
	KeyAssignments   = "academic_assignments"
	KeyExperiments   = "academic_experiments"
	KeyTimetable     = "academic_timetable"
	KeyStudySessions = "academic_study_sessions"
	KeyChapters      = "academic_chapters"
)

// Backend is a durable key-value store. Load returns (nil, nil) for an
// absent key.
type Backend interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Close() error
}

// Open opens the named backend rooted at dir. Supported names are "sqlite"
// (default database file studydesk.db) and "bolt" (studydesk.bolt).
func Open(backend, dir string) (Backend, error) {
	switch backend {
	case "", "sqlite":
		return OpenSQLite(dir)
	case "bolt":
		return OpenBolt(dir)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
