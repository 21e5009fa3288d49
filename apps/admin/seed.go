package main

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pekotaker/student-management-be/core/school"
	"github.com/Pekotaker/student-management-be/core/user"
)

const (
	seedNumAdmins            = 5
	seedNumClasses           = 10
	seedMinStudentsPerClass  = 18
	seedMaxStudentsPerClass  = 22
	seedNumSchedulesPerClass = 10
	seedNumTeachers          = 40 // 4 per subject
	seedMaxClassesPerTeacher = 3

	seedScoreMin  = 0.0
	seedScoreMax  = 10.0
	seedScoreStep = 0.25

	seedDefaultPassword = "password123"
)

var (
	seedSubjectNames = []string{
		"Math", "Physics", "Chemistry", "English", "Literature",
		"Biology", "History", "Geography", "P.E", "Ethics",
	}
	seedFirstNames = []string{"John", "Jane", "Alice", "Bob", "Carol", "David", "Eve", "Frank", "Grace", "Heidi"}
	seedLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
)

type seeder struct {
	*commandLine
	rnd        *rand.Rand
	usedEmails map[string]bool
	pwdHash    []byte
}

// seed populates the database in the shape the front-end demo expects:
// admins, the ten stock subjects, ten classes, forty teachers assigned to up
// to three classes each, 18-22 students per class, ten schedules per class
// and a score per (student, subject) pair. All accounts share one password.
func (cli *commandLine) seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s := &seeder{
		commandLine: cli,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		usedEmails:  make(map[string]bool),
		pwdHash:     hash,
	}
	return s.run()
}

func (s *seeder) run() error {
	ctx := context.Background()

	logger.Println("Wiping database tables...")
	if err := s.wipe(ctx); err != nil {
		return err
	}

	logger.Println("Seeding admins...")
	for i := 0; i < seedNumAdmins; i++ {
		adm := user.Admin{
			Email:        s.uniqueEmail("admin"),
			Name:         s.randomName(),
			PasswordHash: s.pwdHash,
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := s.admRepo.CreateAdmin(ctx, adm); err != nil {
			return err
		}
	}

	logger.Println("Seeding subjects...")
	subjects := make([]school.Subject, 0, len(seedSubjectNames))
	for _, name := range seedSubjectNames {
		sub, err := s.schRepo.CreateSubject(ctx, school.Subject{Name: name})
		if err != nil {
			return err
		}
		subjects = append(subjects, sub)
	}

	logger.Println("Seeding classes...")
	classes := make([]school.Class, 0, seedNumClasses)
	for i := 0; i < seedNumClasses; i++ {
		cls, err := s.schRepo.CreateClass(ctx, school.Class{Name: fmt.Sprintf("Class %c", 'A'+i)})
		if err != nil {
			return err
		}
		classes = append(classes, cls)
	}

	logger.Println("Seeding teachers...")
	teachers := make([]school.Teacher, 0, seedNumTeachers)
	for i := 0; i < seedNumTeachers; i++ {
		usr, err := s.createAccount(ctx, "teacher")
		if err != nil {
			return err
		}
		// round-robin over subjects
		tch, err := s.schRepo.CreateTeacher(ctx, school.Teacher{
			UserID:    usr.ID,
			SubjectID: subjects[i%len(subjects)].ID,
		})
		if err != nil {
			return err
		}
		teachers = append(teachers, tch)
	}

	logger.Println("Assigning teachers to classes (up to 3 each)...")
	for _, tch := range teachers {
		for _, idx := range s.rnd.Perm(len(classes))[:1+s.rnd.Intn(seedMaxClassesPerTeacher)] {
			tc := school.TeacherClass{TeacherID: tch.ID, ClassID: classes[idx].ID}
			if _, err := s.schRepo.CreateTeacherClass(ctx, tc); err != nil {
				return err
			}
		}
	}

	logger.Println("Seeding students in each class...")
	students := make([]school.Student, 0, seedNumClasses*seedMaxStudentsPerClass)
	for _, cls := range classes {
		n := seedMinStudentsPerClass + s.rnd.Intn(seedMaxStudentsPerClass-seedMinStudentsPerClass+1)
		for i := 0; i < n; i++ {
			usr, err := s.createAccount(ctx, "student")
			if err != nil {
				return err
			}
			std, err := s.schRepo.CreateStudent(ctx, school.Student{UserID: usr.ID, ClassID: cls.ID})
			if err != nil {
				return err
			}
			students = append(students, std)
		}
	}

	logger.Println("Seeding schedules...")
	for _, cls := range classes {
		for i := 0; i < seedNumSchedulesPerClass; i++ {
			sch := school.Schedule{
				Date:     strconv.Itoa(1 + s.rnd.Intn(5)), // 1=Mon .. 5=Fri
				ClassID:  cls.ID,
				TimeSlot: 1 + s.rnd.Intn(7),
				Subject:  subjects[s.rnd.Intn(len(subjects))].Name,
			}
			if _, err := s.schRepo.CreateSchedule(ctx, sch); err != nil {
				return err
			}
		}
	}

	logger.Println("Seeding scores for each student in each subject...")
	for _, std := range students {
		for _, sub := range subjects {
			sc := school.Score{
				StudentID: std.ID,
				SubjectID: sub.ID,
				Value:     s.randomScore(),
			}
			if _, err := s.schRepo.CreateScore(ctx, sc); err != nil {
				return err
			}
		}
	}

	logger.Println("Creating the default admin...")
	defaultAdmin := user.Admin{
		Email:        "admin@example.com",
		Name:         "Admin User",
		PasswordHash: s.pwdHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.admRepo.CreateAdmin(ctx, defaultAdmin); err != nil {
		return err
	}

	logger.Println("Seeding complete!")
	return nil
}

func (s *seeder) wipe(ctx context.Context) error {
	const q = `
TRUNCATE TABLE
    teacher_class,
    scores,
    schedules,
    teachers,
    students,
    subjects,
    classes,
    users,
    admin_users
RESTART IDENTITY CASCADE`
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *seeder) createAccount(ctx context.Context, emailBase string) (user.User, error) {
	gender := "M"
	if s.rnd.Intn(2) == 0 {
		gender = "F"
	}
	usr := user.User{
		Email:        s.uniqueEmail(emailBase),
		Name:         s.randomName(),
		Gender:       gender,
		DateOfBirth:  s.randomDateOfBirth(),
		PasswordHash: s.pwdHash,
		CreatedAt:    time.Now().UTC(),
	}
	return s.usrRepo.CreateUser(ctx, usr)
}

func (s *seeder) uniqueEmail(base string) string {
	for {
		email := fmt.Sprintf("%s%03d@example.com", base, s.rnd.Intn(1000))
		if !s.usedEmails[email] {
			s.usedEmails[email] = true
			return email
		}
	}
}

func (s *seeder) randomName() string {
	return seedFirstNames[s.rnd.Intn(len(seedFirstNames))] + " " + seedLastNames[s.rnd.Intn(len(seedLastNames))]
}

// randomDateOfBirth returns a YYYY-MM-DD date between 1980 and 2012.
func (s *seeder) randomDateOfBirth() string {
	start := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, s.rnd.Intn(days)).Format("2006-01-02")
}

func (s *seeder) randomScore() string {
	steps := int((seedScoreMax-seedScoreMin)/seedScoreStep) + 1
	score := seedScoreMin + float64(s.rnd.Intn(steps))*seedScoreStep
	return strconv.FormatFloat(score, 'f', -1, 64)
}
