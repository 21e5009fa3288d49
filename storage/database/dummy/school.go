package dummydb

import (
	"context"
	"sort"

	"github.com/Pekotaker/student-management-be/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateSubject(_ context.Context, sub school.Subject) (school.Subject, error) {
	t := repo.db.subjects
	t.Lock()
	defer t.Unlock()

	t.pk++
	sub.ID = t.pk
	t.table[sub.ID] = &sub
	return sub, nil
}

func (repo *schoolRepository) CreateClass(_ context.Context, cls school.Class) (school.Class, error) {
	t := repo.db.classes
	t.Lock()
	defer t.Unlock()

	t.pk++
	cls.ID = t.pk
	t.table[cls.ID] = &cls
	return cls, nil
}

func (repo *schoolRepository) CreateTeacher(_ context.Context, tch school.Teacher) (school.Teacher, error) {
	t := repo.db.teachers
	t.Lock()
	defer t.Unlock()

	t.pk++
	tch.ID = t.pk
	t.table[tch.ID] = &tch
	return tch, nil
}

func (repo *schoolRepository) CreateStudent(_ context.Context, std school.Student) (school.Student, error) {
	t := repo.db.students
	t.Lock()
	defer t.Unlock()

	t.pk++
	std.ID = t.pk
	t.table[std.ID] = &std
	return std, nil
}

func (repo *schoolRepository) CreateTeacherClass(_ context.Context, tc school.TeacherClass) (school.TeacherClass, error) {
	t := repo.db.teacherClass
	t.Lock()
	defer t.Unlock()

	t.pk++
	tc.ID = t.pk
	t.table[tc.ID] = &tc
	return tc, nil
}

func (repo *schoolRepository) CreateSchedule(_ context.Context, sch school.Schedule) (school.Schedule, error) {
	t := repo.db.schedules
	t.Lock()
	defer t.Unlock()

	t.pk++
	sch.ID = t.pk
	t.table[sch.ID] = &sch
	return sch, nil
}

func (repo *schoolRepository) GetSubjectByID(_ context.Context, id int) (school.Subject, error) {
	t := repo.db.subjects
	t.RLock()
	defer t.RUnlock()

	if sub, ok := t.table[id]; ok {
		return *sub, nil
	}
	return school.Subject{}, school.ErrNotFound
}

func (repo *schoolRepository) GetClassByID(_ context.Context, id int) (school.Class, error) {
	t := repo.db.classes
	t.RLock()
	defer t.RUnlock()

	if cls, ok := t.table[id]; ok {
		return *cls, nil
	}
	return school.Class{}, school.ErrNotFound
}

func (repo *schoolRepository) GetTeacherByID(_ context.Context, id int) (school.Teacher, error) {
	t := repo.db.teachers
	t.RLock()
	defer t.RUnlock()

	if tch, ok := t.table[id]; ok {
		return *tch, nil
	}
	return school.Teacher{}, school.ErrNotFound
}

func (repo *schoolRepository) GetStudentByID(_ context.Context, id int) (school.Student, error) {
	t := repo.db.students
	t.RLock()
	defer t.RUnlock()

	if std, ok := t.table[id]; ok {
		return *std, nil
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *schoolRepository) GetStudentByUserID(_ context.Context, userID int) (school.Student, error) {
	t := repo.db.students
	t.RLock()
	defer t.RUnlock()

	for _, std := range t.table {
		if std.UserID == userID {
			return *std, nil
		}
	}
	return school.Student{}, school.ErrNotFound
}

func (repo *schoolRepository) QuerySubjects(_ context.Context) ([]school.Subject, error) {
	t := repo.db.subjects
	t.RLock()
	defer t.RUnlock()

	subjects := make([]school.Subject, 0, len(t.table))
	for _, sub := range t.table {
		subjects = append(subjects, *sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *schoolRepository) QueryClasses(_ context.Context) ([]school.Class, error) {
	t := repo.db.classes
	t.RLock()
	defer t.RUnlock()

	classes := make([]school.Class, 0, len(t.table))
	for _, cls := range t.table {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo *schoolRepository) QueryTeacherInfos(ctx context.Context) ([]school.TeacherInfo, error) {
	repo.db.teachers.RLock()
	teachers := make([]school.Teacher, 0, len(repo.db.teachers.table))
	for _, tch := range repo.db.teachers.table {
		teachers = append(teachers, *tch)
	}
	repo.db.teachers.RUnlock()
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })

	infos := make([]school.TeacherInfo, 0, len(teachers))
	for _, tch := range teachers {
		info := school.TeacherInfo{
			TeacherID: tch.ID,
			UserID:    tch.UserID,
			Name:      "Unknown",
			Subject:   "Unknown",
		}
		repo.db.users.RLock()
		if usr, ok := repo.db.users.table[tch.UserID]; ok {
			info.Name = usr.Name
		}
		repo.db.users.RUnlock()
		repo.db.subjects.RLock()
		if sub, ok := repo.db.subjects.table[tch.SubjectID]; ok {
			info.Subject = sub.Name
		}
		repo.db.subjects.RUnlock()
		infos = append(infos, info)
	}
	return infos, nil
}

func (repo *schoolRepository) QueryTeacherClasses(ctx context.Context, teacherID int) ([]school.Class, error) {
	assignments, err := repo.QueryTeacherAssignments(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(assignments))
	classes := make([]school.Class, 0, len(assignments))
	repo.db.classes.RLock()
	defer repo.db.classes.RUnlock()
	for _, tc := range assignments {
		if seen[tc.ClassID] {
			continue
		}
		seen[tc.ClassID] = true
		if cls, ok := repo.db.classes.table[tc.ClassID]; ok {
			classes = append(classes, *cls)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo *schoolRepository) QueryTeacherAssignments(_ context.Context, teacherID int) ([]school.TeacherClass, error) {
	t := repo.db.teacherClass
	t.RLock()
	defer t.RUnlock()

	assignments := make([]school.TeacherClass, 0)
	for _, tc := range t.table {
		if tc.TeacherID == teacherID {
			assignments = append(assignments, *tc)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (repo *schoolRepository) QueryStudentsByClassIDs(_ context.Context, classIDs []int) ([]school.Student, error) {
	wanted := make(map[int]bool, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = true
	}

	t := repo.db.students
	t.RLock()
	defer t.RUnlock()

	students := make([]school.Student, 0)
	for _, std := range t.table {
		if wanted[std.ClassID] {
			students = append(students, *std)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *schoolRepository) QuerySchedulesByClassID(_ context.Context, classID int) ([]school.Schedule, error) {
	t := repo.db.schedules
	t.RLock()
	defer t.RUnlock()

	schedules := make([]school.Schedule, 0)
	for _, sch := range t.table {
		if sch.ClassID == classID {
			schedules = append(schedules, *sch)
		}
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ID < schedules[j].ID })
	return schedules, nil
}

func (repo *schoolRepository) GetScore(_ context.Context, studentID, subjectID int) (school.Score, error) {
	t := repo.db.scores
	t.RLock()
	defer t.RUnlock()

	for _, sc := range t.table {
		if sc.StudentID == studentID && sc.SubjectID == subjectID {
			return *sc, nil
		}
	}
	return school.Score{}, school.ErrNotFound
}

func (repo *schoolRepository) CreateScore(_ context.Context, sc school.Score) (school.Score, error) {
	t := repo.db.scores
	t.Lock()
	defer t.Unlock()

	t.pk++
	sc.ID = t.pk
	t.table[sc.ID] = &sc
	return sc, nil
}

func (repo *schoolRepository) UpdateScore(_ context.Context, sc school.Score) (school.Score, error) {
	t := repo.db.scores
	t.Lock()
	defer t.Unlock()

	if _, ok := t.table[sc.ID]; !ok {
		return school.Score{}, school.ErrNotFound
	}
	t.table[sc.ID] = &sc
	return sc, nil
}

func (repo *schoolRepository) QueryStudentScores(_ context.Context, studentID int) ([]school.SubjectScore, error) {
	repo.db.scores.RLock()
	scores := make([]school.Score, 0)
	for _, sc := range repo.db.scores.table {
		if sc.StudentID == studentID {
			scores = append(scores, *sc)
		}
	}
	repo.db.scores.RUnlock()
	sort.Slice(scores, func(i, j int) bool { return scores[i].ID < scores[j].ID })

	repo.db.subjects.RLock()
	defer repo.db.subjects.RUnlock()
	result := make([]school.SubjectScore, 0, len(scores))
	for _, sc := range scores {
		ss := school.SubjectScore{Score: sc.Value}
		if sub, ok := repo.db.subjects.table[sc.SubjectID]; ok {
			ss.Subject = sub.Name
		}
		result = append(result, ss)
	}
	return result, nil
}
