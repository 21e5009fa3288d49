package dummydb

import (
	"sync"

	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
)

// DB is an in-memory stand-in for the relational store, used by tests.
type (
	DB struct {
		users        *userTable
		admins       *adminTable
		subjects     *subjectTable
		classes      *classTable
		teachers     *teacherTable
		students     *studentTable
		teacherClass *teacherClassTable
		scores       *scoreTable
		schedules    *scheduleTable
	}

	userTable struct {
		sync.RWMutex
		table map[int]*user.User
		pk    int
	}

	adminTable struct {
		sync.RWMutex
		table map[int]*user.Admin
		pk    int
	}

	subjectTable struct {
		sync.RWMutex
		table map[int]*school.Subject
		pk    int
	}

	classTable struct {
		sync.RWMutex
		table map[int]*school.Class
		pk    int
	}

	teacherTable struct {
		sync.RWMutex
		table map[int]*school.Teacher
		pk    int
	}

	studentTable struct {
		sync.RWMutex
		table map[int]*school.Student
		pk    int
	}

	teacherClassTable struct {
		sync.RWMutex
		table map[int]*school.TeacherClass
		pk    int
	}

	scoreTable struct {
		sync.RWMutex
		table map[int]*school.Score
		pk    int
	}

	scheduleTable struct {
		sync.RWMutex
		table map[int]*school.Schedule
		pk    int
	}
)

func Open() (*DB, error) {
	db := &DB{
		users:        &userTable{table: make(map[int]*user.User)},
		admins:       &adminTable{table: make(map[int]*user.Admin)},
		subjects:     &subjectTable{table: make(map[int]*school.Subject)},
		classes:      &classTable{table: make(map[int]*school.Class)},
		teachers:     &teacherTable{table: make(map[int]*school.Teacher)},
		students:     &studentTable{table: make(map[int]*school.Student)},
		teacherClass: &teacherClassTable{table: make(map[int]*school.TeacherClass)},
		scores:       &scoreTable{table: make(map[int]*school.Score)},
		schedules:    &scheduleTable{table: make(map[int]*school.Schedule)},
	}
	return db, nil
}
