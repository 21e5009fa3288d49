package school

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Pekotaker/student-management-be/core"
	"github.com/Pekotaker/student-management-be/core/user"
)

// ErrNotFound is what repositories return for any missing row; the service
// translates it into core.NotFoundError naming the entity.
var ErrNotFound = errors.New("not found")

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		CreateClass(ctx context.Context, cls Class) (Class, error)
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		CreateStudent(ctx context.Context, std Student) (Student, error)
		CreateTeacherClass(ctx context.Context, tc TeacherClass) (TeacherClass, error)
		CreateSchedule(ctx context.Context, sch Schedule) (Schedule, error)

		GetSubjectByID(ctx context.Context, id int) (Subject, error)
		GetClassByID(ctx context.Context, id int) (Class, error)
		GetTeacherByID(ctx context.Context, id int) (Teacher, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		GetStudentByUserID(ctx context.Context, userID int) (Student, error)

		QuerySubjects(ctx context.Context) ([]Subject, error)
		QueryClasses(ctx context.Context) ([]Class, error)
		// QueryTeacherInfos joins teachers with their user and subject rows.
		QueryTeacherInfos(ctx context.Context) ([]TeacherInfo, error)
		// QueryTeacherClasses returns the distinct classes a teacher is
		// assigned to, regardless of duplicate assignment rows.
		QueryTeacherClasses(ctx context.Context, teacherID int) ([]Class, error)
		QueryTeacherAssignments(ctx context.Context, teacherID int) ([]TeacherClass, error)
		QueryStudentsByClassIDs(ctx context.Context, classIDs []int) ([]Student, error)
		QuerySchedulesByClassID(ctx context.Context, classID int) ([]Schedule, error)

		GetScore(ctx context.Context, studentID, subjectID int) (Score, error)
		CreateScore(ctx context.Context, sc Score) (Score, error)
		UpdateScore(ctx context.Context, sc Score) (Score, error)
		// QueryStudentScores joins scores with subject names.
		QueryStudentScores(ctx context.Context, studentID int) ([]SubjectScore, error)
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
	}
)

func NewService(repo Repository, usrRepo user.Repository) *Service {
	return &Service{repo: repo, usrRepo: usrRepo}
}

func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	return svc.repo.CreateClass(ctx, Class{Name: nc.Name})
}

func (svc *Service) CreateSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(ctx, Subject{Name: ns.Name})
}

func (svc *Service) RegisterTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if _, err := svc.usrRepo.GetUserByID(ctx, nt.UserID); err != nil {
		if err == user.ErrNotFound {
			return Teacher{}, core.NewNotFoundError("User or Subject")
		}
		return Teacher{}, errors.Wrap(err, "finding user")
	}
	if _, err := svc.repo.GetSubjectByID(ctx, nt.SubjectID); err != nil {
		if err == ErrNotFound {
			return Teacher{}, core.NewNotFoundError("User or Subject")
		}
		return Teacher{}, errors.Wrap(err, "finding subject")
	}
	return svc.repo.CreateTeacher(ctx, Teacher{UserID: nt.UserID, SubjectID: nt.SubjectID})
}

func (svc *Service) RegisterStudent(ctx context.Context, ns NewStudent) (Student, error) {
	if _, err := svc.usrRepo.GetUserByID(ctx, ns.UserID); err != nil {
		if err == user.ErrNotFound {
			return Student{}, core.NewNotFoundError("User or Class")
		}
		return Student{}, errors.Wrap(err, "finding user")
	}
	if _, err := svc.repo.GetClassByID(ctx, ns.ClassID); err != nil {
		if err == ErrNotFound {
			return Student{}, core.NewNotFoundError("User or Class")
		}
		return Student{}, errors.Wrap(err, "finding class")
	}
	return svc.repo.CreateStudent(ctx, Student{UserID: ns.UserID, ClassID: ns.ClassID})
}

// AssignTeacherToClass inserts unconditionally once both sides exist;
// assigning the same pair twice leaves two assignment rows.
func (svc *Service) AssignTeacherToClass(ctx context.Context, atc AssignTeacherClass) (TeacherClass, error) {
	if _, err := svc.repo.GetTeacherByID(ctx, atc.TeacherID); err != nil {
		if err == ErrNotFound {
			return TeacherClass{}, core.NewNotFoundError("Teacher or Class")
		}
		return TeacherClass{}, errors.Wrap(err, "finding teacher")
	}
	if _, err := svc.repo.GetClassByID(ctx, atc.ClassID); err != nil {
		if err == ErrNotFound {
			return TeacherClass{}, core.NewNotFoundError("Teacher or Class")
		}
		return TeacherClass{}, errors.Wrap(err, "finding class")
	}
	return svc.repo.CreateTeacherClass(ctx, TeacherClass{TeacherID: atc.TeacherID, ClassID: atc.ClassID})
}

func (svc *Service) CreateSchedule(ctx context.Context, ns NewSchedule) (Schedule, error) {
	if _, err := svc.repo.GetClassByID(ctx, ns.ClassID); err != nil {
		if err == ErrNotFound {
			return Schedule{}, core.NewNotFoundError("Class")
		}
		return Schedule{}, errors.Wrap(err, "finding class")
	}
	sch := Schedule{
		Date:     ns.Date,
		ClassID:  ns.ClassID,
		TimeSlot: ns.TimeSlot,
		Subject:  ns.Subject,
	}
	return svc.repo.CreateSchedule(ctx, sch)
}

func (svc *Service) Teachers(ctx context.Context) ([]TeacherInfo, error) {
	return svc.repo.QueryTeacherInfos(ctx)
}

func (svc *Service) Classes(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryClasses(ctx)
}

func (svc *Service) Subjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *Service) TeacherSubject(ctx context.Context, teacherID int) (Subject, error) {
	tch, err := svc.repo.GetTeacherByID(ctx, teacherID)
	if err != nil {
		if err == ErrNotFound {
			return Subject{}, core.NewNotFoundError("Teacher")
		}
		return Subject{}, errors.Wrap(err, "finding teacher")
	}
	sub, err := svc.repo.GetSubjectByID(ctx, tch.SubjectID)
	if err != nil {
		if err == ErrNotFound {
			return Subject{}, core.NewNotFoundError("Subject")
		}
		return Subject{}, errors.Wrap(err, "finding subject")
	}
	return sub, nil
}

func (svc *Service) TeacherClasses(ctx context.Context, teacherID int) ([]Class, error) {
	if _, err := svc.repo.GetTeacherByID(ctx, teacherID); err != nil {
		if err == ErrNotFound {
			return nil, core.NewNotFoundError("Teacher")
		}
		return nil, errors.Wrap(err, "finding teacher")
	}
	return svc.repo.QueryTeacherClasses(ctx, teacherID)
}

// TeacherStudents returns every student of every class the teacher is
// assigned to, with the student's name and their score in the teacher's
// subject (empty when not scored yet).
func (svc *Service) TeacherStudents(ctx context.Context, teacherID int) ([]StudentInfo, error) {
	tch, err := svc.repo.GetTeacherByID(ctx, teacherID)
	if err != nil {
		if err == ErrNotFound {
			return nil, core.NewNotFoundError("Teacher")
		}
		return nil, errors.Wrap(err, "finding teacher")
	}

	classes, err := svc.repo.QueryTeacherClasses(ctx, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher classes")
	}
	if len(classes) == 0 {
		return []StudentInfo{}, nil
	}

	classIDs := make([]int, 0, len(classes))
	for _, cls := range classes {
		classIDs = append(classIDs, cls.ID)
	}
	students, err := svc.repo.QueryStudentsByClassIDs(ctx, classIDs)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	infos := make([]StudentInfo, 0, len(students))
	for _, std := range students {
		info := StudentInfo{
			StudentID: std.ID,
			UserID:    std.UserID,
			ClassID:   std.ClassID,
		}
		if usr, err := svc.usrRepo.GetUserByID(ctx, std.UserID); err == nil {
			info.Name = usr.Name
		} else if err != user.ErrNotFound {
			return nil, errors.Wrap(err, "finding student user")
		}
		if sc, err := svc.repo.GetScore(ctx, std.ID, tch.SubjectID); err == nil {
			info.Score = sc.Value
		} else if err != ErrNotFound {
			return nil, errors.Wrap(err, "finding score")
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// AddScore records a score as an upsert on (student, subject): an existing
// row is overwritten, otherwise one is inserted. The two reads and the write
// are not atomic; concurrent writers may lose an update.
func (svc *Service) AddScore(ctx context.Context, ns NewScore) (Score, error) {
	if _, err := svc.repo.GetStudentByID(ctx, ns.StudentID); err != nil {
		if err == ErrNotFound {
			return Score{}, core.NewNotFoundError("Student or Subject")
		}
		return Score{}, errors.Wrap(err, "finding student")
	}
	tch, err := svc.repo.GetTeacherByID(ctx, ns.TeacherID)
	if err != nil {
		if err == ErrNotFound {
			return Score{}, core.NewNotFoundError("Student or Subject")
		}
		return Score{}, errors.Wrap(err, "finding teacher")
	}
	if tch.SubjectID != ns.SubjectID {
		return Score{}, core.NewNotFoundError("Student or Subject")
	}

	if existing, err := svc.repo.GetScore(ctx, ns.StudentID, ns.SubjectID); err == nil {
		existing.Value = ns.Value
		return svc.repo.UpdateScore(ctx, existing)
	} else if err != ErrNotFound {
		return Score{}, errors.Wrap(err, "finding score")
	}
	return svc.repo.CreateScore(ctx, Score{StudentID: ns.StudentID, SubjectID: ns.SubjectID, Value: ns.Value})
}

// StudentScores looks the student up by their user ID, as the original
// student portal does.
func (svc *Service) StudentScores(ctx context.Context, userID int) ([]SubjectScore, error) {
	std, err := svc.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, core.NewNotFoundError("Student")
		}
		return nil, errors.Wrap(err, "finding student")
	}
	return svc.repo.QueryStudentScores(ctx, std.ID)
}

func (svc *Service) StudentSchedule(ctx context.Context, userID int) ([]ScheduleEntry, error) {
	std, err := svc.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, core.NewNotFoundError("Student")
		}
		return nil, errors.Wrap(err, "finding student")
	}
	schedules, err := svc.repo.QuerySchedulesByClassID(ctx, std.ClassID)
	if err != nil {
		return nil, errors.Wrap(err, "querying schedules")
	}
	entries := make([]ScheduleEntry, 0, len(schedules))
	for _, sch := range schedules {
		entries = append(entries, ScheduleEntry{TimeSlot: sch.TimeSlot, Subject: sch.Subject})
	}
	return entries, nil
}

// TeacherAssignments exposes the raw assignment rows (duplicates included).
func (svc *Service) TeacherAssignments(ctx context.Context, teacherID int) ([]TeacherClass, error) {
	return svc.repo.QueryTeacherAssignments(ctx, teacherID)
}
