// Package testutil provides a migrated sqlite3 in-memory database and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/core/user"
	"github.com/trezcool/userql/storage/database"
)

const Engine = "sqlite3"

var dbCount int64

// Config returns a database config pointing to a fresh, named sqlite3 in-memory database.
// The single connection keeps the in-memory database alive and shared.
func Config(t *testing.T) *core.Config {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	n := atomic.AddInt64(&dbCount, 1)

	conf := &core.Config{TestMode: true}
	conf.Database = core.DatabaseConfig{
		Engine:          Engine,
		URL:             fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, n),
		MaxOpenConns:    1,
		MinIdleConns:    1,
		ConnMaxIdleTime: time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
	return conf
}

// PrepareDB opens and migrates a fresh database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(Config(t))
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db, Engine); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, name, email string, age int) user.User {
	t.Helper()

	usr, err := repo.CreateUser(context.Background(), user.NewUser{Name: name, Email: email, Age: age})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
