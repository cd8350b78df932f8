package database

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/userql/core"
)

//go:embed migrations
var migrationsFS embed.FS

// Open creates the connection pool and checks that the database is reachable.
// Supported engines are postgres and sqlite3.
// The pool keeps up to MaxOpenConns connections, MinIdleConns of which stay idle for at most ConnMaxIdleTime.
func Open(conf *core.Config) (*sqlx.DB, error) {
	if conf.Database.URL == "" {
		return nil, errors.New("DATABASE_URL must be set")
	}

	db, err := sqlx.Open(conf.Database.Engine, conf.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(conf.Database.MaxOpenConns)
	db.SetMaxIdleConns(conf.Database.MinIdleConns)
	db.SetConnMaxIdleTime(conf.Database.ConnMaxIdleTime)

	if err = ping(db, conf); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ping(db *sqlx.DB, conf *core.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sqlx.DB, engine string) error {
	return RunMigration(ctx, db, engine, "up")
}

// RunMigration runs a goose command (up, down, status, version, reset...) with the migrations of the engine's dialect.
func RunMigration(ctx context.Context, db *sqlx.DB, engine, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(engine); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := goose.RunContext(ctx, command, db.DB, path.Join("migrations", engine), args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// SetMigrationLogger routes goose output to logger.
func SetMigrationLogger(logger core.Logger) {
	goose.SetLogger(gooseLogger{logger})
}

type gooseLogger struct {
	logger core.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
