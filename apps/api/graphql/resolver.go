package gqlapi

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/core/user"
)

// Resolver is the root resolver of both Query and Mutation.
// In-memory fields are served by the memory user service and db* fields by the database one.
type Resolver struct {
	memSvc *user.Service
	dbSvc  *user.Service
	logger core.Logger
}

// NewResolver builds the root resolver; dbSvc may be nil, in which case db* fields fail with a database error.
func NewResolver(memSvc, dbSvc *user.Service, logger core.Logger) *Resolver {
	return &Resolver{memSvc: memSvc, dbSvc: dbSvc, logger: logger}
}

type (
	userSearchInput struct {
		Name  *string
		Email *string
		Age   *int32
	}

	userCreateInput struct {
		Name  string
		Email string
		Age   int32
	}
)

// =========================================================================
// Query

func (r *Resolver) AllUsers(ctx context.Context) (*[]*userResolver, error) {
	users, err := r.memSvc.QueryAll(ctx)
	if err != nil {
		return nil, r.toResolverError(err, "allUsers")
	}
	return newUserListResolver(users), nil
}

// UserByID resolves to null without error when no User has the id.
func (r *Resolver) UserByID(ctx context.Context, args struct{ ID int32 }) (*userResolver, error) {
	usr, err := r.memSvc.GetByID(ctx, int(args.ID))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil
		}
		return nil, r.toResolverError(err, "userById")
	}
	return &userResolver{usr}, nil
}

func (r *Resolver) SearchUsers(ctx context.Context, args struct{ Input userSearchInput }) (*[]*userResolver, error) {
	filter := user.QueryFilter{
		Name:  null.StringFromPtr(args.Input.Name),
		Email: null.StringFromPtr(args.Input.Email),
		Age:   intFromPtr(args.Input.Age),
	}
	users, err := r.memSvc.Filter(ctx, filter)
	if err != nil {
		return nil, r.toResolverError(err, "searchUsers")
	}
	return newUserListResolver(users), nil
}

func (r *Resolver) DBUsers(ctx context.Context) (*[]*userResolver, error) {
	if r.dbSvc == nil {
		return nil, r.toResolverError(errDBNotConfigured, "dbUsers")
	}
	users, err := r.dbSvc.QueryAll(ctx)
	if err != nil {
		return nil, r.toResolverError(err, "dbUsers")
	}
	return newUserListResolver(users), nil
}

// DBUserByID fails with "User not found" when no row has the id.
func (r *Resolver) DBUserByID(ctx context.Context, args struct{ ID int32 }) (*userResolver, error) {
	if r.dbSvc == nil {
		return nil, r.toResolverError(errDBNotConfigured, "dbUserById")
	}
	usr, err := r.dbSvc.GetByID(ctx, int(args.ID))
	if err != nil {
		return nil, r.toResolverError(err, "dbUserById")
	}
	return &userResolver{usr}, nil
}

// =========================================================================
// Mutation

func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input userCreateInput }) (*userResolver, error) {
	nu := user.NewUser{
		Name:  args.Input.Name,
		Email: args.Input.Email,
		Age:   int(args.Input.Age),
	}
	usr, err := r.memSvc.Create(ctx, nu)
	if err != nil {
		return nil, r.toResolverError(err, "createUser")
	}
	return &userResolver{usr}, nil
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID    int32
	Name  *string
	Email *string
	Age   *int32
}) (*userResolver, error) {
	uu := user.UpdateUser{
		Name:  null.StringFromPtr(args.Name),
		Email: null.StringFromPtr(args.Email),
		Age:   intFromPtr(args.Age),
	}
	usr, err := r.memSvc.Update(ctx, int(args.ID), uu)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, notFoundWithID(args.ID)
		}
		return nil, r.toResolverError(err, "updateUser")
	}
	return &userResolver{usr}, nil
}

// DeleteUser resolves to whether a User was removed.
func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID int32 }) (*bool, error) {
	deleted, err := r.memSvc.Delete(ctx, int(args.ID))
	if err != nil {
		return nil, r.toResolverError(err, "deleteUser")
	}
	return &deleted, nil
}

func (r *Resolver) ResetUsers(ctx context.Context) (*bool, error) {
	if err := r.memSvc.Reset(ctx); err != nil {
		return nil, r.toResolverError(err, "resetUsers")
	}
	ok := true
	return &ok, nil
}

func intFromPtr(i *int32) null.Int {
	if i == nil {
		return null.Int{}
	}
	return null.IntFrom(int(*i))
}
