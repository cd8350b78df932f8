package inmemdb

import (
	"sync"

	"github.com/trezcool/userql/core/user"
)

type (
	// DB is the process-wide in-memory store. It is never persisted.
	DB struct {
		user *userTable
	}

	// userTable keeps Users in insertion order. A single lock guards the whole table,
	// reads included, so that every snapshot is consistent.
	userTable struct {
		sync.Mutex
		rows []user.User
	}
)

func Open() *DB {
	return &DB{
		user: &userTable{rows: make([]user.User, 0)},
	}
}
