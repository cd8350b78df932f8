package user

import (
	"context"
	"errors"

	"github.com/trezcool/userql/core"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
)

type (
	Repository interface {
		QueryAllUsers(ctx context.Context) ([]User, error)
		// GetUserByID returns ErrNotFound if no User has this ID.
		GetUserByID(ctx context.Context, id int) (User, error)
		// FilterUsers applies AND operation on available QueryFilter fields.
		FilterUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		CreateUser(ctx context.Context, nu NewUser) (User, error)
		// UpdateUser only saves the fields set on UpdateUser. It returns ErrNotFound if no User has this ID.
		UpdateUser(ctx context.Context, id int, uu UpdateUser) (User, error)
		DeleteUserByID(ctx context.Context, id int) (bool, error)
		DeleteAllUsers(ctx context.Context) error
	}

	Service struct {
		repo     Repository
		validate *core.Validator
	}
)

func NewService(repo Repository, validate *core.Validator) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.validate.Struct(nu); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, nu)
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]User, error) {
	if err := svc.validate.Struct(filter); err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return svc.repo.QueryAllUsers(ctx)
	}
	return svc.repo.FilterUsers(ctx, filter)
}

func (svc *Service) Update(ctx context.Context, id int, uu UpdateUser) (User, error) {
	if err := svc.validate.Struct(uu); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(ctx, id, uu)
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.repo.DeleteUserByID(ctx, id)
}

func (svc *Service) Reset(ctx context.Context) error {
	return svc.repo.DeleteAllUsers(ctx)
}
