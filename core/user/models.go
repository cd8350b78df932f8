package user

import (
	"strings"

	"github.com/volatiletech/null/v8"
)

type User struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Age   uint8  `json:"age" db:"age"`
}

// Matches reports whether the User satisfies every criterion set on the filter.
func (u *User) Matches(filter QueryFilter) bool {
	if filter.Name.Valid && !containsFold(u.Name, filter.Name.String) {
		return false
	}
	if filter.Email.Valid && !containsFold(u.Email, filter.Email.String) {
		return false
	}
	if filter.Age.Valid && int(u.Age) < filter.Age.Int {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// NewUser contains information needed to create a new User.
// Name and Email are stored as given; Age must fit in a byte.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age" validate:"min=0,max=255"`
}

// UpdateUser defines what information may be provided to modify an existing User.
// Only Valid fields are applied; a Valid zero value sets the field to empty.
type UpdateUser struct {
	Name  null.String `json:"name"`
	Email null.String `json:"email"`
	Age   null.Int    `json:"age" validate:"omitempty,min=0,max=255"`
}

func (uu *UpdateUser) IsEmpty() bool {
	return !uu.Name.Valid && !uu.Email.Valid && !uu.Age.Valid
}

// Apply sets the supplied fields on usr.
func (uu *UpdateUser) Apply(usr *User) {
	if uu.Name.Valid {
		usr.Name = uu.Name.String
	}
	if uu.Email.Valid {
		usr.Email = uu.Email.String
	}
	if uu.Age.Valid {
		usr.Age = uint8(uu.Age.Int)
	}
}

// QueryFilter is applied with AND on its set fields; unset fields match everything.
// Name and Email do a case-insensitive substring match, Age is a minimum age.
type QueryFilter struct {
	Name  null.String `json:"name"`
	Email null.String `json:"email"`
	Age   null.Int    `json:"age" validate:"omitempty,min=0,max=255"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return !qf.Name.Valid && !qf.Email.Valid && !qf.Age.Valid
}
