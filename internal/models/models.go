package models

import "time"

// SubjectColor is the fixed palette a subject can be tagged with. It only
// affects presentation.
type SubjectColor string

const (
	ColorMath      SubjectColor = "math"
	ColorPhysics   SubjectColor = "physics"
	ColorChemistry SubjectColor = "chemistry"
	ColorBiology   SubjectColor = "biology"
	ColorEnglish   SubjectColor = "english"
	ColorHistory   SubjectColor = "history"
	ColorCS        SubjectColor = "cs"
	ColorDefault   SubjectColor = "default"
)

// SubjectColors lists the palette in display order.
var SubjectColors = []SubjectColor{
	ColorMath, ColorPhysics, ColorChemistry, ColorBiology,
	ColorEnglish, ColorHistory, ColorCS, ColorDefault,
}

// WorkStatus is the progress state shared by assignments and chapters.
type WorkStatus string

const (
	StatusPending    WorkStatus = "pending"
	StatusInProgress WorkStatus = "in-progress"
	StatusCompleted  WorkStatus = "completed"
)

// WorkStatuses lists the states in cycling order.
var WorkStatuses = []WorkStatus{StatusPending, StatusInProgress, StatusCompleted}

// Priority of an assignment.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities in cycling order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ExperimentStatus of a lab experiment.
type ExperimentStatus string

const (
	ExperimentUpcoming  ExperimentStatus = "upcoming"
	ExperimentCompleted ExperimentStatus = "completed"
)

// Weekday is a schedulable day. Sunday is deliberately absent: classes can't
// be scheduled on it, though it can still be "today".
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays lists schedulable days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayOf = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// DayOf maps a wall-clock time to its schedulable day. ok is false on
// Sundays.
func DayOf(t time.Time) (Weekday, bool) {
	d, ok := weekdayOf[t.Weekday()]
	return d, ok
}

// Subject is a course the user tracks. It is the root entity: everything
// else references a subject by id.
type Subject struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Code      string       `json:"code"`
	Color     SubjectColor `json:"color"`
	Professor string       `json:"professor,omitempty"`
	Credits   int          `json:"credits,omitempty"`
}

// Chapter is a subdivision of a subject's content with its own completion
// status. Order controls display sequencing and is not required to be
// contiguous or unique.
type Chapter struct {
	ID          string     `json:"id"`
	SubjectID   string     `json:"subjectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Order       int        `json:"order"`
	Status      WorkStatus `json:"status"`
}

// Assignment is a piece of work with a due date.
type Assignment struct {
	ID          string     `json:"id"`
	SubjectID   string     `json:"subjectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"dueDate"`
	Status      WorkStatus `json:"status"`
	Priority    Priority   `json:"priority"`
}

// Experiment is a dated lab session.
type Experiment struct {
	ID          string           `json:"id"`
	SubjectID   string           `json:"subjectId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Date        time.Time        `json:"date"`
	Status      ExperimentStatus `json:"status"`
	LabNumber   string           `json:"labNumber,omitempty"`
}

// TimetableSlot is a recurring weekly class. Times are wall-clock "HH:MM"
// strings with no date component; lexical order equals chronological order.
type TimetableSlot struct {
	ID        string  `json:"id"`
	SubjectID string  `json:"subjectId"`
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Room      string  `json:"room,omitempty"`
}

// StudySession is a recorded block of study time, in whole minutes.
type StudySession struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subjectId"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"`
	Topic     string    `json:"topic,omitempty"`
}
