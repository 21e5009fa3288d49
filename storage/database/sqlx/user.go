package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Pekotaker/student-management-be/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	const q = `
INSERT INTO users (email, name, gender, date_of_birth, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, q, usr.Email, usr.Name, usr.Gender, usr.DateOfBirth, usr.PasswordHash, usr.CreatedAt,
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	const q = `SELECT id, email, name, gender, date_of_birth, password_hash, created_at FROM users WHERE id = $1`
	if err := repo.db.GetContext(ctx, &usr, q, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	const q = `SELECT id, email, name, gender, date_of_birth, password_hash, created_at FROM users WHERE email = $1`
	if err := repo.db.GetContext(ctx, &usr, q, email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user by email")
	}
	return usr, nil
}

type adminRepository struct {
	db *sqlx.DB
}

var _ user.AdminRepository = (*adminRepository)(nil)

func NewAdminRepository(db *sqlx.DB) user.AdminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) CreateAdmin(ctx context.Context, adm user.Admin) (user.Admin, error) {
	const q = `
INSERT INTO admin_users (email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, q, adm.Email, adm.Name, adm.PasswordHash, adm.CreatedAt).Scan(&adm.ID)
	if err != nil {
		return user.Admin{}, errors.Wrap(err, "inserting admin")
	}
	return adm, nil
}

func (repo *adminRepository) GetAdminByEmail(ctx context.Context, email string) (user.Admin, error) {
	var adm user.Admin
	const q = `SELECT id, email, name, password_hash, created_at FROM admin_users WHERE email = $1`
	if err := repo.db.GetContext(ctx, &adm, q, email); err != nil {
		if err == sql.ErrNoRows {
			return user.Admin{}, user.ErrNotFound
		}
		return user.Admin{}, errors.Wrap(err, "selecting admin by email")
	}
	return adm, nil
}
