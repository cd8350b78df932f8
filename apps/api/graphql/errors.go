package gqlapi

import (
	"github.com/pkg/errors"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/core/user"
)

const (
	codeNotFound   = "NOT_FOUND"
	codeDatabase   = "DATABASE_ERROR"
	codeValidation = "VALIDATION_ERROR"
	codeInternal   = "INTERNAL"
)

var errDBNotConfigured = core.NewStorageError(errors.New("database not configured"), "resolving database field")

// resolverError is what clients see: a fixed message plus machine-readable extensions.
type resolverError struct {
	message    string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return e.extensions
}

func newResolverError(message, code string) *resolverError {
	return &resolverError{message: message, extensions: map[string]interface{}{"code": code}}
}

// notFoundWithID is the "User not found" error of mutations; it carries the requested id.
func notFoundWithID(id int32) error {
	err := newResolverError("User not found", codeNotFound)
	err.extensions["id"] = id
	return err
}

// toResolverError converts any internal error into a resolverError.
// Storage and unexpected failures are logged; the driver message is kept for the former only.
func (r *Resolver) toResolverError(err error, field string) error {
	if errors.Is(err, user.ErrNotFound) {
		return newResolverError("User not found", codeNotFound)
	}

	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		rErr := newResolverError("Invalid input", codeValidation)
		flds := make(map[string]interface{}, len(vErr.Fields))
		for _, fErr := range vErr.Fields {
			flds[fErr.Field] = fErr.Error
		}
		rErr.extensions["fields"] = flds
		return rErr
	}

	var sErr *core.StorageError
	if errors.As(err, &sErr) {
		r.logger.Error("database error", err, map[string]interface{}{"field": field})
		return newResolverError("Database error: "+sErr.Err.Error(), codeDatabase)
	}

	r.logger.Error("internal error", err, map[string]interface{}{"field": field})
	return newResolverError("Internal server error", codeInternal)
}
