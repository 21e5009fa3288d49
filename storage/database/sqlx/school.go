package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Pekotaker/student-management-be/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateSubject(ctx context.Context, sub school.Subject) (school.Subject, error) {
	const q = `INSERT INTO subjects (name) VALUES ($1) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, sub.Name).Scan(&sub.ID); err != nil {
		return school.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo *schoolRepository) CreateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	const q = `INSERT INTO classes (name) VALUES ($1) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, cls.Name).Scan(&cls.ID); err != nil {
		return school.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *schoolRepository) CreateTeacher(ctx context.Context, tch school.Teacher) (school.Teacher, error) {
	const q = `INSERT INTO teachers (user_id, subject_id) VALUES ($1, $2) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, tch.UserID, tch.SubjectID).Scan(&tch.ID); err != nil {
		return school.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	return tch, nil
}

func (repo *schoolRepository) CreateStudent(ctx context.Context, std school.Student) (school.Student, error) {
	const q = `INSERT INTO students (user_id, class_id) VALUES ($1, $2) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, std.UserID, std.ClassID).Scan(&std.ID); err != nil {
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo *schoolRepository) CreateTeacherClass(ctx context.Context, tc school.TeacherClass) (school.TeacherClass, error) {
	const q = `INSERT INTO teacher_class (teacher_id, class_id) VALUES ($1, $2) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, tc.TeacherID, tc.ClassID).Scan(&tc.ID); err != nil {
		return school.TeacherClass{}, errors.Wrap(err, "inserting teacher_class")
	}
	return tc, nil
}

func (repo *schoolRepository) CreateSchedule(ctx context.Context, sch school.Schedule) (school.Schedule, error) {
	const q = `INSERT INTO schedules (date, class_id, time_slot, subject) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, sch.Date, sch.ClassID, sch.TimeSlot, sch.Subject).Scan(&sch.ID); err != nil {
		return school.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return sch, nil
}

func (repo *schoolRepository) GetSubjectByID(ctx context.Context, id int) (school.Subject, error) {
	var sub school.Subject
	if err := repo.db.GetContext(ctx, &sub, `SELECT id, name FROM subjects WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return school.Subject{}, school.ErrNotFound
		}
		return school.Subject{}, errors.Wrap(err, "selecting subject")
	}
	return sub, nil
}

func (repo *schoolRepository) GetClassByID(ctx context.Context, id int) (school.Class, error) {
	var cls school.Class
	if err := repo.db.GetContext(ctx, &cls, `SELECT id, name FROM classes WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return school.Class{}, school.ErrNotFound
		}
		return school.Class{}, errors.Wrap(err, "selecting class")
	}
	return cls, nil
}

func (repo *schoolRepository) GetTeacherByID(ctx context.Context, id int) (school.Teacher, error) {
	var tch school.Teacher
	if err := repo.db.GetContext(ctx, &tch, `SELECT id, user_id, subject_id FROM teachers WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return school.Teacher{}, school.ErrNotFound
		}
		return school.Teacher{}, errors.Wrap(err, "selecting teacher")
	}
	return tch, nil
}

func (repo *schoolRepository) GetStudentByID(ctx context.Context, id int) (school.Student, error) {
	var std school.Student
	if err := repo.db.GetContext(ctx, &std, `SELECT id, user_id, class_id FROM students WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return school.Student{}, school.ErrNotFound
		}
		return school.Student{}, errors.Wrap(err, "selecting student")
	}
	return std, nil
}

func (repo *schoolRepository) GetStudentByUserID(ctx context.Context, userID int) (school.Student, error) {
	var std school.Student
	if err := repo.db.GetContext(ctx, &std, `SELECT id, user_id, class_id FROM students WHERE user_id = $1`, userID); err != nil {
		if err == sql.ErrNoRows {
			return school.Student{}, school.ErrNotFound
		}
		return school.Student{}, errors.Wrap(err, "selecting student by user")
	}
	return std, nil
}

func (repo *schoolRepository) QuerySubjects(ctx context.Context) ([]school.Subject, error) {
	subjects := make([]school.Subject, 0)
	if err := repo.db.SelectContext(ctx, &subjects, `SELECT id, name FROM subjects ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting subjects")
	}
	return subjects, nil
}

func (repo *schoolRepository) QueryClasses(ctx context.Context) ([]school.Class, error) {
	classes := make([]school.Class, 0)
	if err := repo.db.SelectContext(ctx, &classes, `SELECT id, name FROM classes ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting classes")
	}
	return classes, nil
}

func (repo *schoolRepository) QueryTeacherInfos(ctx context.Context) ([]school.TeacherInfo, error) {
	const q = `
SELECT t.id                       AS teacher_id,
       t.user_id                  AS user_id,
       COALESCE(u.name, 'Unknown') AS name,
       COALESCE(s.name, 'Unknown') AS subject
FROM teachers t
         LEFT JOIN users u ON u.id = t.user_id
         LEFT JOIN subjects s ON s.id = t.subject_id
ORDER BY t.id`
	infos := make([]school.TeacherInfo, 0)
	if err := repo.db.SelectContext(ctx, &infos, q); err != nil {
		return nil, errors.Wrap(err, "selecting teacher infos")
	}
	return infos, nil
}

func (repo *schoolRepository) QueryTeacherClasses(ctx context.Context, teacherID int) ([]school.Class, error) {
	const q = `
SELECT DISTINCT c.id, c.name
FROM classes c
         JOIN teacher_class tc ON tc.class_id = c.id
WHERE tc.teacher_id = $1
ORDER BY c.id`
	classes := make([]school.Class, 0)
	if err := repo.db.SelectContext(ctx, &classes, q, teacherID); err != nil {
		return nil, errors.Wrap(err, "selecting teacher classes")
	}
	return classes, nil
}

func (repo *schoolRepository) QueryTeacherAssignments(ctx context.Context, teacherID int) ([]school.TeacherClass, error) {
	const q = `SELECT id, teacher_id, class_id FROM teacher_class WHERE teacher_id = $1 ORDER BY id`
	assignments := make([]school.TeacherClass, 0)
	if err := repo.db.SelectContext(ctx, &assignments, q, teacherID); err != nil {
		return nil, errors.Wrap(err, "selecting teacher assignments")
	}
	return assignments, nil
}

func (repo *schoolRepository) QueryStudentsByClassIDs(ctx context.Context, classIDs []int) ([]school.Student, error) {
	q, args, err := sqlx.In(`SELECT id, user_id, class_id FROM students WHERE class_id IN (?) ORDER BY id`, classIDs)
	if err != nil {
		return nil, errors.Wrap(err, "building students query")
	}
	students := make([]school.Student, 0)
	if err = repo.db.SelectContext(ctx, &students, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo *schoolRepository) QuerySchedulesByClassID(ctx context.Context, classID int) ([]school.Schedule, error) {
	const q = `SELECT id, date, class_id, time_slot, subject FROM schedules WHERE class_id = $1 ORDER BY id`
	schedules := make([]school.Schedule, 0)
	if err := repo.db.SelectContext(ctx, &schedules, q, classID); err != nil {
		return nil, errors.Wrap(err, "selecting schedules")
	}
	return schedules, nil
}

func (repo *schoolRepository) GetScore(ctx context.Context, studentID, subjectID int) (school.Score, error) {
	var sc school.Score
	const q = `SELECT id, student_id, subject_id, scores FROM scores WHERE student_id = $1 AND subject_id = $2`
	if err := repo.db.GetContext(ctx, &sc, q, studentID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return school.Score{}, school.ErrNotFound
		}
		return school.Score{}, errors.Wrap(err, "selecting score")
	}
	return sc, nil
}

func (repo *schoolRepository) CreateScore(ctx context.Context, sc school.Score) (school.Score, error) {
	const q = `INSERT INTO scores (student_id, subject_id, scores) VALUES ($1, $2, $3) RETURNING id`
	if err := repo.db.QueryRowContext(ctx, q, sc.StudentID, sc.SubjectID, sc.Value).Scan(&sc.ID); err != nil {
		return school.Score{}, errors.Wrap(err, "inserting score")
	}
	return sc, nil
}

func (repo *schoolRepository) UpdateScore(ctx context.Context, sc school.Score) (school.Score, error) {
	const q = `UPDATE scores SET scores = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, q, sc.Value, sc.ID); err != nil {
		return school.Score{}, errors.Wrap(err, "updating score")
	}
	return sc, nil
}

func (repo *schoolRepository) QueryStudentScores(ctx context.Context, studentID int) ([]school.SubjectScore, error) {
	const q = `
SELECT s.name    AS subject,
       sc.scores AS score
FROM scores sc
         JOIN subjects s ON s.id = sc.subject_id
WHERE sc.student_id = $1
ORDER BY sc.id`
	scores := make([]school.SubjectScore, 0)
	if err := repo.db.SelectContext(ctx, &scores, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting student scores")
	}
	return scores, nil
}
