package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/core/user"
)

const (
	instrumentationName = "github.com/trezcool/userql/storage/database/sqlx"

	userTable = "users"
)

var userColumns = []string{"id", "name", "email", "age"}

type userRepository struct {
	exec    core.DBExecutor
	engine  string
	builder sq.StatementBuilderType
	tracer  trace.Tracer
	metrics *metrics
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

// NewUserRepository returns a user.Repository over the users table.
// engine is the sql driver name; it selects the placeholder format.
func NewUserRepository(exec core.DBExecutor, engine string) user.Repository {
	var placeholder sq.PlaceholderFormat = sq.Question
	if engine == "postgres" {
		placeholder = sq.Dollar
	}
	return &userRepository{
		exec:    exec,
		engine:  engine,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		tracer:  otel.Tracer(instrumentationName),
		metrics: newMetrics(otel.Meter(instrumentationName)),
	}
}

// trapNoRowsErr maps sql "no rows" err to user.ErrNotFound
func (repo *userRepository) trapNoRowsErr(err error, op string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return core.NewStorageError(err, op)
}

// observe starts a span for the operation; the returned func ends it and records metrics.
func (repo *userRepository) observe(ctx context.Context, op string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := repo.tracer.Start(ctx, "users."+op, trace.WithSpanKind(trace.SpanKindClient))
	attrs := []attribute.KeyValue{
		attribute.String("db.system", repo.engine),
		attribute.String("db.operation", op),
		attribute.String("db.sql.table", userTable),
	}
	span.SetAttributes(attrs...)

	return ctx, func(err error) {
		if err != nil && err != user.ErrNotFound {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		repo.metrics.record(ctx, time.Since(start), err, attrs...)
	}
}

func (repo *userRepository) selectUsers() sq.SelectBuilder {
	return repo.builder.Select(userColumns...).From(userTable).OrderBy("id")
}

func (repo *userRepository) insertUser(nu user.NewUser) sq.InsertBuilder {
	return repo.builder.
		Insert(userTable).
		Columns("name", "email", "age").
		Values(nu.Name, nu.Email, nu.Age).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))
}

// updateUser only sets the fields supplied on uu.
func (repo *userRepository) updateUser(id int, uu user.UpdateUser) sq.UpdateBuilder {
	values := make(map[string]interface{}, 3)
	if uu.Name.Valid {
		values["name"] = uu.Name.String
	}
	if uu.Email.Valid {
		values["email"] = uu.Email.String
	}
	if uu.Age.Valid {
		values["age"] = uu.Age.Int
	}
	return repo.builder.
		Update(userTable).
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) (users []user.User, err error) {
	ctx, done := repo.observe(ctx, "query_all")
	defer func() { done(err) }()

	query, args, err := repo.selectUsers().ToSql()
	if err != nil {
		return nil, core.NewStorageError(err, "building users query")
	}
	users = make([]user.User, 0)
	if err = repo.exec.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, core.NewStorageError(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (usr user.User, err error) {
	ctx, done := repo.observe(ctx, "get_by_id")
	defer func() { done(err) }()

	query, args, err := repo.selectUsers().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return user.User{}, core.NewStorageError(err, "building user query")
	}
	if err = repo.exec.GetContext(ctx, &usr, query, args...); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return usr, nil
}

func (repo *userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) (users []user.User, err error) {
	ctx, done := repo.observe(ctx, "filter")
	defer func() { done(err) }()

	builder := repo.selectUsers()
	// users with Name and/or Email containing the search values (case-insensitive)
	if filter.Name.Valid {
		builder = builder.Where(likeFold("name", filter.Name.String))
	}
	if filter.Email.Valid {
		builder = builder.Where(likeFold("email", filter.Email.String))
	}
	if filter.Age.Valid {
		builder = builder.Where(sq.GtOrEq{"age": filter.Age.Int})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, core.NewStorageError(err, "building users query")
	}
	users = make([]user.User, 0)
	if err = repo.exec.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, core.NewStorageError(err, "filtering users")
	}
	return users, nil
}

func (repo *userRepository) CreateUser(ctx context.Context, nu user.NewUser) (usr user.User, err error) {
	ctx, done := repo.observe(ctx, "create")
	defer func() { done(err) }()

	query, args, err := repo.insertUser(nu).ToSql()
	if err != nil {
		return user.User{}, core.NewStorageError(err, "building user insert")
	}
	if err = repo.exec.QueryRowxContext(ctx, query, args...).StructScan(&usr); err != nil {
		return user.User{}, core.NewStorageError(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, id int, uu user.UpdateUser) (usr user.User, err error) {
	if uu.IsEmpty() {
		return repo.GetUserByID(ctx, id)
	}

	ctx, done := repo.observe(ctx, "update")
	defer func() { done(err) }()

	query, args, err := repo.updateUser(id, uu).ToSql()
	if err != nil {
		return user.User{}, core.NewStorageError(err, "building user update")
	}
	if err = repo.exec.QueryRowxContext(ctx, query, args...).StructScan(&usr); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "updating user")
	}
	return usr, nil
}

func (repo *userRepository) DeleteUserByID(ctx context.Context, id int) (deleted bool, err error) {
	ctx, done := repo.observe(ctx, "delete")
	defer func() { done(err) }()

	query, args, err := repo.builder.Delete(userTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, core.NewStorageError(err, "building user delete")
	}
	res, err := repo.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return false, core.NewStorageError(err, "deleting user")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return false, core.NewStorageError(err, "deleting user")
	}
	return cnt > 0, nil
}

func (repo *userRepository) DeleteAllUsers(ctx context.Context) (err error) {
	ctx, done := repo.observe(ctx, "delete_all")
	defer func() { done(err) }()

	query, args, err := repo.builder.Delete(userTable).ToSql()
	if err != nil {
		return core.NewStorageError(err, "building users delete")
	}
	if _, err = repo.exec.ExecContext(ctx, query, args...); err != nil {
		return core.NewStorageError(err, "deleting users")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeValue builds a substring pattern; LIKE wildcards in s match literally.
func likeValue(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// likeFold matches column against a lowercased substring with backslash escapes.
func likeFold(column, s string) sq.Sqlizer {
	return sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", likeValue(s))
}

type metrics struct {
	queryCount    metric.Int64Counter
	queryDuration metric.Float64Histogram
	queryErrors   metric.Int64Counter
}

// newMetrics reports instrument creation failures to the otel error handler
// and falls back to no-op instruments for those.
func newMetrics(meter metric.Meter) *metrics {
	queryCount, err := meter.Int64Counter("userql.db.query.count",
		metric.WithDescription("Total number of user queries executed"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		otel.Handle(err)
		queryCount = noop.Int64Counter{}
	}
	queryDuration, err := meter.Float64Histogram("userql.db.query.duration",
		metric.WithDescription("User query duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
		queryDuration = noop.Float64Histogram{}
	}
	queryErrors, err := meter.Int64Counter("userql.db.query.errors",
		metric.WithDescription("Total number of user query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		otel.Handle(err)
		queryErrors = noop.Int64Counter{}
	}
	return &metrics{
		queryCount:    queryCount,
		queryDuration: queryDuration,
		queryErrors:   queryErrors,
	}
}

func (m *metrics) record(ctx context.Context, duration time.Duration, err error, attrs ...attribute.KeyValue) {
	opt := metric.WithAttributes(attrs...)
	m.queryCount.Add(ctx, 1, opt)
	m.queryDuration.Record(ctx, float64(duration.Microseconds())/1000, opt)
	if err != nil && err != user.ErrNotFound {
		m.queryErrors.Add(ctx, 1, opt)
	}
}
