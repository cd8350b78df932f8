package inmemdb

import (
	"context"

	"github.com/trezcool/userql/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, len(repo.db.rows))
	copy(users, repo.db.rows)
	return users
}

func (repo *userRepository) index(id int) int {
	for i, usr := range repo.db.rows {
		if usr.ID == id {
			return i
		}
	}
	return -1
}

func (repo *userRepository) QueryAllUsers(_ context.Context) ([]user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()
	return repo.query(), nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id int) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if i := repo.index(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) FilterUsers(_ context.Context, filter user.QueryFilter) ([]user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	users := make([]user.User, 0)
	for _, usr := range repo.db.rows {
		if usr.Matches(filter) {
			users = append(users, usr)
		}
	}
	return users, nil
}

// CreateUser assigns the next ID as the current number of Users + 1.
// IDs of deleted Users may therefore be reissued.
func (repo *userRepository) CreateUser(_ context.Context, nu user.NewUser) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr := user.User{
		ID:    len(repo.db.rows) + 1,
		Name:  nu.Name,
		Email: nu.Email,
		Age:   uint8(nu.Age),
	}
	repo.db.rows = append(repo.db.rows, usr)
	return usr, nil
}

func (repo *userRepository) UpdateUser(_ context.Context, id int, uu user.UpdateUser) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.index(id)
	if i < 0 {
		return user.User{}, user.ErrNotFound
	}
	// only save set fields
	uu.Apply(&repo.db.rows[i])
	return repo.db.rows[i], nil
}

func (repo *userRepository) DeleteUserByID(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.index(id)
	if i < 0 {
		return false, nil
	}
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return true, nil
}

func (repo *userRepository) DeleteAllUsers(_ context.Context) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.rows = make([]user.User, 0)
	return nil
}
