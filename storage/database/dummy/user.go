package dummydb

import (
	"context"

	"github.com/Pekotaker/student-management-be/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.users}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	usr.ID = repo.db.pk
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id int) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.db.table {
		if usr.Email == email {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

type adminRepository struct {
	db *adminTable
}

var _ user.AdminRepository = (*adminRepository)(nil)

func NewAdminRepository(db *DB) user.AdminRepository {
	return &adminRepository{db: db.admins}
}

func (repo *adminRepository) CreateAdmin(_ context.Context, adm user.Admin) (user.Admin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	adm.ID = repo.db.pk
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *adminRepository) GetAdminByEmail(_ context.Context, email string) (user.Admin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, adm := range repo.db.table {
		if adm.Email == email {
			return *adm, nil
		}
	}
	return user.Admin{}, user.ErrNotFound
}
