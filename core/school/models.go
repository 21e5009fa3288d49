package school

import (
	"github.com/Pekotaker/student-management-be/core"
)

type (
	Subject struct {
		ID   int    `json:"id" db:"id"`
		Name string `json:"name" db:"name"`
	}

	Class struct {
		ID   int    `json:"id" db:"id"`
		Name string `json:"name" db:"name"`
	}

	// Teacher links one User to exactly one Subject.
	Teacher struct {
		ID        int `json:"teacher_id" db:"id"`
		UserID    int `json:"user_id" db:"user_id"`
		SubjectID int `json:"subject_id" db:"subject_id"`
	}

	// Student links one User to exactly one Class.
	Student struct {
		ID      int `json:"student_id" db:"id"`
		UserID  int `json:"user_id" db:"user_id"`
		ClassID int `json:"class_id" db:"class_id"`
	}

	// TeacherClass assigns a Teacher to a Class. No uniqueness is enforced:
	// assigning twice yields two rows.
	TeacherClass struct {
		ID        int `json:"id" db:"id"`
		TeacherID int `json:"teacher_id" db:"teacher_id"`
		ClassID   int `json:"class_id" db:"class_id"`
	}

	// Score holds one value per (student, subject) pair. The pair is kept
	// unique by update-or-insert in the service, not by a DB constraint.
	Score struct {
		ID        int    `json:"id" db:"id"`
		StudentID int    `json:"student_id" db:"student_id"`
		SubjectID int    `json:"subject_id" db:"subject_id"`
		Value     string `json:"score" db:"scores"`
	}

	// Schedule stores the subject as free text; there is no referential
	// integrity to the subjects table.
	Schedule struct {
		ID       int    `json:"id" db:"id"`
		Date     string `json:"date,omitempty" db:"date"`
		ClassID  int    `json:"class_id" db:"class_id"`
		TimeSlot int    `json:"time_slot" db:"time_slot"`
		Subject  string `json:"subject" db:"subject"`
	}
)

// Read models for the joined listings.
type (
	TeacherInfo struct {
		TeacherID int    `json:"teacher_id" db:"teacher_id"`
		UserID    int    `json:"user_id" db:"user_id"`
		Name      string `json:"name" db:"name"`
		Subject   string `json:"subject" db:"subject"`
	}

	StudentInfo struct {
		StudentID int    `json:"student_id" db:"student_id"`
		UserID    int    `json:"user_id" db:"user_id"`
		Name      string `json:"student_name" db:"name"`
		ClassID   int    `json:"class_id" db:"class_id"`
		Score     string `json:"score" db:"score"` // score in the requesting teacher's subject, "" when unscored
	}

	SubjectScore struct {
		Subject string `json:"subject" db:"subject"`
		Score   string `json:"score" db:"score"`
	}

	ScheduleEntry struct {
		TimeSlot int    `json:"time_slot" db:"time_slot"`
		Subject  string `json:"subject" db:"subject"`
	}
)

// Request payloads. Each endpoint binds exactly one of these; fields are
// validated before any lookup.
type (
	NewClass struct {
		Name string `json:"name" validate:"required"`
	}

	NewSubject struct {
		Name string `json:"name" validate:"required"`
	}

	NewTeacher struct {
		UserID    int `json:"user_id" validate:"required"`
		SubjectID int `json:"subject_id" validate:"required"`
	}

	NewStudent struct {
		UserID  int `json:"user_id" validate:"required"`
		ClassID int `json:"class_id" validate:"required"`
	}

	AssignTeacherClass struct {
		TeacherID int `json:"teacher_id" validate:"required"`
		ClassID   int `json:"class_id" validate:"required"`
	}

	NewSchedule struct {
		ClassID  int    `json:"class_id" validate:"required"`
		TimeSlot int    `json:"time_slot" validate:"required"`
		Subject  string `json:"subject" validate:"required"`
		Date     string `json:"date"`
	}

	NewScore struct {
		StudentID int    `json:"student_id" validate:"required"`
		SubjectID int    `json:"subject_id" validate:"required"`
		TeacherID int    `json:"teacher_id" validate:"required"`
		Value     string `json:"score_value" validate:"required"`
	}
)

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	return core.Validate.Struct(nc)
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.Validate.Struct(ns)
}

func (nt *NewTeacher) Validate() error { return core.Validate.Struct(nt) }

func (ns *NewStudent) Validate() error { return core.Validate.Struct(ns) }

func (atc *AssignTeacherClass) Validate() error { return core.Validate.Struct(atc) }

func (ns *NewSchedule) Validate() error {
	ns.Subject = core.CleanString(ns.Subject)
	return core.Validate.Struct(ns)
}

func (ns *NewScore) Validate() error {
	ns.Value = core.CleanString(ns.Value)
	return core.Validate.Struct(ns)
}
