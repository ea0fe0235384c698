package rbac

import "errors"

// ErrNotFound indicates that the requested record does not exist.
var ErrNotFound = errors.New("rbac: not found")

// ErrPermissionDenied indicates a verified token whose embedded permission
// set does not cover a required permission.
var ErrPermissionDenied = errors.New("user does not have permission")

// ErrBearerPrefix indicates an absent authorization header or one that does
// not carry a bearer token.
var ErrBearerPrefix = errors.New("header does not start with Bearer")

// TokenError wraps a signature, issuer or expiry failure from token
// verification. Its text is surfaced to the client on the 401 response.
type TokenError struct {
	cause error
}

func (e *TokenError) Error() string { return e.cause.Error() }

func (e *TokenError) Unwrap() error { return e.cause }

// NotFoundError reports a missing entity referenced by an operation,
// e.g. {Entity: "role", Detail: "no role id: <id>"}.
type NotFoundError struct {
	Entity string
	Detail string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// AlreadyExistsError reports a uniqueness conflict on create. Detail carries
// the identifying fields of the row that already owns the value.
type AlreadyExistsError struct {
	Entity string
	Detail string
}

func (e *AlreadyExistsError) Error() string { return e.Entity + " has already been created" }
