package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/Pekotaker/student-management-be/core"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
	}

	AdminRepository interface {
		CreateAdmin(ctx context.Context, adm Admin) (Admin, error)
		GetAdminByEmail(ctx context.Context, email string) (Admin, error)
	}

	Service struct {
		repo    Repository
		admRepo AdminRepository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, admRepo AdminRepository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, admRepo: admRepo, mailSvc: mailSvc}
}

// checkUserEmailUniqueness only consults the users table; the same email may
// still exist as an Admin.
func (svc *Service) checkUserEmailUniqueness(ctx context.Context, email string) error {
	if _, err := svc.repo.GetUserByEmail(ctx, email); err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return errors.Wrap(err, "checking email uniqueness")
	}
	return nil
}

func (svc *Service) checkAdminEmailUniqueness(ctx context.Context, email string) error {
	if _, err := svc.admRepo.GetAdminByEmail(ctx, email); err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return errors.Wrap(err, "checking admin email uniqueness")
	}
	return nil
}

func (svc *Service) RegisterUser(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		Email:       nu.Email,
		Name:        nu.Name,
		Gender:      nu.Gender,
		DateOfBirth: nu.DateOfBirth,
		CreatedAt:   time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) RegisterAdmin(ctx context.Context, na NewAdmin) (Admin, error) {
	adm := Admin{
		Email:     na.Email,
		Name:      na.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := adm.SetPassword(na.Password); err != nil {
		return Admin{}, errors.Wrap(err, "hashing password")
	}
	return svc.admRepo.CreateAdmin(ctx, adm)
}

// AuthenticateUser fails with ErrInvalidCredentials on unknown email and on
// password mismatch alike; callers must not tell the two apart.
func (svc *Service) AuthenticateUser(ctx context.Context, creds Credentials) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) AuthenticateAdmin(ctx context.Context, creds Credentials) (Admin, error) {
	adm, err := svc.admRepo.GetAdminByEmail(ctx, creds.Email)
	if err != nil {
		if err == ErrNotFound {
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, errors.Wrap(err, "finding admin by email")
	}
	if err = adm.CheckPassword(creds.Password); err != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return adm, nil
}

func (svc *Service) GetUserByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	name := usr.Name
	if name == "" {
		name = usr.Email
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:     "Welcome!",
		TextContent: fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now log in with your email address.", name),
	})
}
