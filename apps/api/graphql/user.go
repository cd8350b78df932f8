package gqlapi

import "github.com/trezcool/userql/core/user"

// userResolver resolves both the User and DBUser types.
type userResolver struct {
	usr user.User
}

func newUserListResolver(users []user.User) *[]*userResolver {
	res := make([]*userResolver, 0, len(users))
	for _, usr := range users {
		res = append(res, &userResolver{usr})
	}
	return &res
}

func (r *userResolver) ID() int32 {
	return int32(r.usr.ID)
}

func (r *userResolver) Name() string {
	return r.usr.Name
}

func (r *userResolver) Email() string {
	return r.usr.Email
}

func (r *userResolver) Age() int32 {
	return int32(r.usr.Age)
}
